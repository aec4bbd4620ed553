package reconcile

import "fmt"

// Classify resolves the entity kind of a document from its "type" field.
//
// "Element" maps to EntityElement, any ProjectType maps to EntityProject,
// and every other value is returned verbatim as the kind. A document with no
// string type cannot be routed and yields ErrUnclassifiable.
func Classify(doc Document) (EntityKind, error) {
	t, ok := doc["type"].(string)
	if !ok || t == "" {
		return "", fmt.Errorf("%w: document %q has no type", ErrUnclassifiable, doc.ID())
	}

	switch {
	case EntityKind(t) == EntityElement:
		return EntityElement, nil
	case IsProjectType(t):
		return EntityProject, nil
	default:
		return EntityKind(t), nil
	}
}
