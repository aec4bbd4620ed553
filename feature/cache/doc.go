// Package cache exposes the local snapshot cache over HTTP.
//
// # Routes
//
//   - GET    /projects                    list cached project ids
//   - PUT    /projects/:projectId/cache   store a snapshot
//   - GET    /projects/:projectId/cache   read a snapshot
//   - DELETE /projects/:projectId/cache   drop a snapshot
//
// A snapshot is validated before it is stored: it must flatten without
// errors and its project id must match the path.
package cache
