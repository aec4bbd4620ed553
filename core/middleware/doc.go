// Package middleware groups the Fiber middleware of the HTTP server.
//
// # Components
//
//   - rayid: assigns every request a ray id, stored in the Fiber locals and
//     echoed in the X-Ray-ID response header.
//   - auth: rejects requests without the configured X-API-Key.
//   - requestlog: logs method, path, status and latency with the ray id.
//
// Register rayid first so the other two can log with the id.
package middleware
