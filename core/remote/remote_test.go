package remote

import (
	"testing"

	"project-sync/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	docs := []reconcile.Document{
		{"id": "p1", "type": "Template"},
		{"id": "d1", "type": "DesignSystem"},
		{"id": "e1", "type": "Element", "elementType": "Board"},
		{"id": "c1", "type": "CodeComponent"},
		{"id": "a1", "type": "Asset"},
	}
	s, err := Assemble("p1", []string{"p1", "d1", "e1", "c1", "a1"}, docs)
	require.NoError(t, err)

	assert.Equal(t, "p1", s.ProjectID())
	assert.Equal(t, "d1", s.DesignSystem.ID())
	assert.Len(t, s.ElementProperties, 2)
	assert.Contains(t, s.ElementProperties, "c1")
	assert.Len(t, s.Assets, 1)
}

func TestAssemble_Errors(t *testing.T) {
	_, err := Assemble("p1", []string{"p1", "p2"}, []reconcile.Document{
		{"id": "p1", "type": "Default"},
		{"id": "p2", "type": "Template"},
	})
	assert.ErrorIs(t, err, reconcile.ErrMalformedSnapshot)

	_, err = Assemble("p1", []string{"d1", "d2"}, []reconcile.Document{
		{"id": "d1", "type": "DesignSystem"},
		{"id": "d2", "type": "DesignSystem"},
	})
	assert.ErrorIs(t, err, reconcile.ErrMalformedSnapshot)

	_, err = Assemble("p1", []string{"x"}, []reconcile.Document{{"id": "x"}})
	assert.ErrorIs(t, err, reconcile.ErrUnclassifiable)
}

func TestAssemble_Empty(t *testing.T) {
	s, err := Assemble("p1", nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, s.ElementProperties)
	assert.Nil(t, s.Project)
}
