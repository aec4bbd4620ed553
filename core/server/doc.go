// Package server holds the HTTP server configuration and error mapping.
//
// The start command builds the Fiber app from Config: the listening port,
// the API key checked by the auth middleware, and the request body limit
// applied to snapshot uploads.
//
// # Errors
//
// StatusFor maps domain errors to HTTP statuses so every feature answers the
// same way: malformed or unclassifiable snapshots are 400, unknown projects
// 404, a closed execution host 503 and timeouts 504. ErrorHandler applies the
// mapping to errors a handler returns unanswered.
package server
