package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *stubFeature) Name() string    { return f.name }
func (f *stubFeature) IsEnabled() bool { return f.enabled }
func (f *stubFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	a := &stubFeature{name: "cache", enabled: true}
	b := &stubFeature{name: "disabled"}
	c := &stubFeature{name: "sync", enabled: true}

	m := NewManager()
	m.Register(a)
	m.Register(b)
	m.Register(c)

	loaded, err := m.LoadAll(fiber.New())
	assert.NoError(t, err)
	assert.Equal(t, []string{"cache", "sync"}, loaded)
	assert.False(t, b.loaded)
}

func TestManager_LoadAll_StopsOnError(t *testing.T) {
	bad := &stubFeature{name: "bad", enabled: true, err: errors.New("no routes")}
	after := &stubFeature{name: "after", enabled: true}

	m := NewManager()
	m.Register(bad)
	m.Register(after)

	loaded, err := m.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "failed to load feature bad")
	assert.Empty(t, loaded)
	assert.False(t, after.loaded)
}
