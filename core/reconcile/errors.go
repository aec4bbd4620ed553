package reconcile

import "errors"

var (
	// ErrMalformedSnapshot is returned when a snapshot lacks a required record,
	// map or id.
	ErrMalformedSnapshot = errors.New("malformed snapshot")

	// ErrIDCollision is returned when two documents of one snapshot share an id.
	ErrIDCollision = errors.New("document id collision")

	// ErrUnclassifiable is returned when a document has no string "type" field.
	ErrUnclassifiable = errors.New("unclassifiable document")
)
