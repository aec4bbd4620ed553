package reconcile

import (
	"fmt"
	"sort"
)

// DocumentMap is an id -> document mapping that remembers insertion order.
type DocumentMap struct {
	order []string
	docs  map[string]Document
}

// NewDocumentMap returns an empty DocumentMap with room for n documents.
func NewDocumentMap(n int) *DocumentMap {
	return &DocumentMap{
		order: make([]string, 0, n),
		docs:  make(map[string]Document, n),
	}
}

// Len returns the number of documents.
func (m *DocumentMap) Len() int {
	return len(m.order)
}

// Get returns the document stored under id.
func (m *DocumentMap) Get(id string) (Document, bool) {
	doc, ok := m.docs[id]
	return doc, ok
}

// IDs returns the document ids in insertion order.
func (m *DocumentMap) IDs() []string {
	return append([]string(nil), m.order...)
}

// Insert adds doc under id. Ids are unique across a snapshot, so an existing
// id is reported as ErrIDCollision and the map is left unchanged.
func (m *DocumentMap) Insert(id string, doc Document) error {
	if id == "" {
		return fmt.Errorf("%w: empty document id", ErrMalformedSnapshot)
	}
	if _, exists := m.docs[id]; exists {
		return fmt.Errorf("%w: %q", ErrIDCollision, id)
	}
	m.order = append(m.order, id)
	m.docs[id] = doc
	return nil
}

// Flatten merges every record of a snapshot into one DocumentMap, ordered as
// project, design system, elements by id, then assets by id.
func Flatten(s *Snapshot) (*DocumentMap, error) {
	if err := validate(s); err != nil {
		return nil, err
	}

	m := NewDocumentMap(2 + len(s.ElementProperties) + len(s.Assets))

	if err := m.Insert(s.Project.ID(), s.Project); err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	if err := m.Insert(s.DesignSystem.ID(), s.DesignSystem); err != nil {
		return nil, fmt.Errorf("design system: %w", err)
	}

	for _, id := range sortedKeys(s.ElementProperties) {
		doc := s.ElementProperties[id]
		if doc == nil {
			return nil, fmt.Errorf("%w: element %q is nil", ErrMalformedSnapshot, id)
		}
		if err := m.Insert(id, doc); err != nil {
			return nil, fmt.Errorf("element: %w", err)
		}
	}

	for _, id := range sortedKeys(s.Assets) {
		doc := s.Assets[id]
		if doc == nil {
			return nil, fmt.Errorf("%w: asset %q is nil", ErrMalformedSnapshot, id)
		}
		if err := m.Insert(id, doc); err != nil {
			return nil, fmt.Errorf("asset: %w", err)
		}
	}

	return m, nil
}

func validate(s *Snapshot) error {
	switch {
	case s == nil:
		return fmt.Errorf("%w: nil snapshot", ErrMalformedSnapshot)
	case s.Project == nil:
		return fmt.Errorf("%w: missing project", ErrMalformedSnapshot)
	case s.Project.ID() == "":
		return fmt.Errorf("%w: missing project.id", ErrMalformedSnapshot)
	case s.DesignSystem == nil:
		return fmt.Errorf("%w: missing designSystem", ErrMalformedSnapshot)
	case s.DesignSystem.ID() == "":
		return fmt.Errorf("%w: missing designSystem.id", ErrMalformedSnapshot)
	case s.ElementProperties == nil:
		return fmt.Errorf("%w: missing elementProperties", ErrMalformedSnapshot)
	}
	return nil
}

func sortedKeys(m map[string]Document) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
