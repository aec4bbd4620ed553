// Package utils provides value conversion helpers shared by the stores and
// the HTTP layer, including normalization of the timestamp encodings found in
// cached and remote snapshots.
package utils
