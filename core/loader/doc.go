// Package loader provides the feature loading system of the HTTP server.
//
// Each feature implements Feature and owns its routes. The start command
// registers features with a Manager and loads the enabled ones after the
// global middleware is in place.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Usage
//
//	mgr := loader.NewManager()
//	mgr.Register(cache.NewFeature(snapshots, log))
//	mgr.Register(sync.NewFeature(deps))
//	loaded, err := mgr.LoadAll(app)
package loader
