package reconcile

// newSnapshot builds a small but complete snapshot for tests.
func newSnapshot(elements map[string]Document) *Snapshot {
	return &Snapshot{
		Project: Document{
			"id":        "p1",
			"type":      "Default",
			"boardIds":  []any{"e1"},
			"symbolIds": []any{},
			"createdAt": float64(1700000000000),
			"updatedAt": float64(1700000005000),
		},
		DesignSystem: Document{"id": "d1", "type": "DesignSystem", "colors": map[string]any{"primary": "#000"}},
		ElementProperties: elements,
	}
}

func element(id, name string) Document {
	return Document{"id": id, "type": "Element", "elementType": "Board", "name": name}
}
