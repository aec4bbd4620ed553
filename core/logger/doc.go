// Package logger builds the zap logger shared by the server, the CLI and the
// execution host.
//
// # Request Correlation
//
// The ray id middleware stores a request id under RayIDKey in the Fiber
// locals. WithRayID copies it onto a child logger so every line a handler
// writes can be tied back to one request.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development, colored levels)
//
// # Usage
//
//	log, err := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Sync failed", zap.Error(err))
package logger
