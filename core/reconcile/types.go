package reconcile

// Document is one persisted record: a project, a design system, an element
// or an asset. Values are whatever a JSON/YAML decoder produces, plus Set.
type Document map[string]any

// ID returns the document's "id" field, or "" when it is missing or not a string.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// Type returns the document's "type" field, or "" when it is missing or not a string.
func (d Document) Type() string {
	t, _ := d["type"].(string)
	return t
}

// Set is an unordered collection of unique comparable elements.
type Set map[any]struct{}

// NewSet builds a Set from the given elements.
func NewSet(elems ...any) Set {
	s := make(Set, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

// Has reports whether e is a member of the set.
func (s Set) Has(e any) bool {
	_, ok := s[e]
	return ok
}

// Snapshot is a complete in-memory copy of one project's state.
type Snapshot struct {
	// Project is the project record (id, boardIds, symbolIds, timestamps, type).
	Project Document `json:"project" yaml:"project"`

	// DesignSystem is the project's design-system record.
	DesignSystem Document `json:"designSystem" yaml:"designSystem"`

	// ElementProperties maps element id to element record.
	ElementProperties map[string]Document `json:"elementProperties" yaml:"elementProperties"`

	// Assets maps asset id to asset record. Optional.
	Assets map[string]Document `json:"assets,omitempty" yaml:"assets,omitempty"`
}

// ProjectID returns the id of the snapshot's project record.
func (s *Snapshot) ProjectID() string {
	if s == nil {
		return ""
	}
	return s.Project.ID()
}

// Clone returns a deep copy of the snapshot, sharing no maps, slices or sets
// with the original.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		Project:      cloneDocument(s.Project),
		DesignSystem: cloneDocument(s.DesignSystem),
	}
	if s.ElementProperties != nil {
		out.ElementProperties = make(map[string]Document, len(s.ElementProperties))
		for id, doc := range s.ElementProperties {
			out.ElementProperties[id] = cloneDocument(doc)
		}
	}
	if s.Assets != nil {
		out.Assets = make(map[string]Document, len(s.Assets))
		for id, doc := range s.Assets {
			out.Assets[id] = cloneDocument(doc)
		}
	}
	return out
}

func cloneDocument(d Document) Document {
	if d == nil {
		return nil
	}
	return Document(cloneValue(map[string]any(d)).(map[string]any))
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Document:
		return cloneDocument(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	case Set:
		out := make(Set, len(val))
		for e := range val {
			out[e] = struct{}{}
		}
		return out
	default:
		return v
	}
}

// EntityKind is the coarse-grained type of a document, used to route and
// label an operation.
type EntityKind string

const (
	// EntityProject is a project record.
	EntityProject EntityKind = "Project"
	// EntityDesignSystem is a design-system record.
	EntityDesignSystem EntityKind = "DesignSystem"
	// EntityElement is any canvas element (board, symbol, instance, ...).
	EntityElement EntityKind = "Element"
	// EntityCodeComponent is a code component definition.
	EntityCodeComponent EntityKind = "CodeComponent"
	// EntityAsset is an uploaded asset record.
	EntityAsset EntityKind = "Asset"
)

// ProjectType is the value a project record stores in its "type" field.
// Every ProjectType classifies as EntityProject.
type ProjectType string

const (
	ProjectDefault              ProjectType = "Default"
	ProjectTemplate             ProjectType = "Template"
	ProjectSymbolLibrary        ProjectType = "SymbolLibrary"
	ProjectCodeComponentLibrary ProjectType = "CodeComponentLibrary"
)

// projectTypes is the closed set of "type" values that mark a project record.
var projectTypes = map[ProjectType]struct{}{
	ProjectDefault:              {},
	ProjectTemplate:             {},
	ProjectSymbolLibrary:        {},
	ProjectCodeComponentLibrary: {},
}

// IsProjectType reports whether t is one of the project markers.
func IsProjectType(t string) bool {
	_, ok := projectTypes[ProjectType(t)]
	return ok
}

// OperationType is the kind of a reconciliation operation.
type OperationType string

const (
	// OpWrite creates or overwrites a document with the local content.
	OpWrite OperationType = "write"
	// OpDelete removes a document from the remote store.
	OpDelete OperationType = "delete"
)

// Operation is one planned remote mutation.
type Operation struct {
	// Type is OpWrite or OpDelete.
	Type OperationType `json:"type" yaml:"type"`

	// EntityKind is the classified kind of the document.
	EntityKind EntityKind `json:"entityKind" yaml:"entityKind"`

	// DocumentID is the id the operation targets.
	DocumentID string `json:"documentId" yaml:"documentId"`

	// Document is the full local document. Only set for OpWrite.
	Document Document `json:"document,omitempty" yaml:"document,omitempty"`
}

// Write builds a write operation.
func Write(kind EntityKind, id string, doc Document) Operation {
	return Operation{Type: OpWrite, EntityKind: kind, DocumentID: id, Document: doc}
}

// Delete builds a delete operation.
func Delete(kind EntityKind, id string) Operation {
	return Operation{Type: OpDelete, EntityKind: kind, DocumentID: id}
}
