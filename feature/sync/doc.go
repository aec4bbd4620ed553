// Package sync plans and applies reconciliation between the local snapshot
// cache and the remote document store.
//
// Every plan is computed by the execution host (core/worker) through a
// Dispatcher, so HTTP handlers never run the engine on the request goroutine.
//
// # Routes
//
//   - POST /sync/plan                 plan two snapshots posted in the body
//   - GET  /sync/:projectId/status    compare the cached snapshot with the remote store
//   - POST /sync/:projectId           apply the plan; ?dry_run=true only plans it
//
// # Remote Loads
//
// Loads of one project's remote snapshot are deduplicated with singleflight:
// concurrent status and sync requests share a single store read. A project
// absent from the remote store is planned as an initial upload, every local
// document becoming a write.
package sync
