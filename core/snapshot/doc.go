// Package snapshot reads, writes and normalizes project snapshots at the
// boundaries of the reconcile engine.
//
// The engine compares values as they are, so both sides of a reconciliation
// must use the same timestamp encoding. Normalize converts every createdAt and
// updatedAt field to unix milliseconds; the local cache and the remote stores
// call it when they materialize a snapshot.
//
// Snapshot files are JSON or YAML, chosen by file extension.
package snapshot
