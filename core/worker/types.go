package worker

import (
	"errors"

	"project-sync/core/reconcile"
)

// ErrHostClosed is returned when posting to, or waiting on, a closed host.
var ErrHostClosed = errors.New("execution host closed")

// Request asks the host to reconcile remote towards local.
type Request struct {
	// CorrelationID identifies the request in its response.
	// A random id is assigned when empty.
	CorrelationID string `json:"correlationId,omitempty"`

	// LocalData is the authoritative snapshot.
	LocalData *reconcile.Snapshot `json:"localData"`

	// RemoteData is the snapshot read from the remote store.
	RemoteData *reconcile.Snapshot `json:"remoteData"`
}

// Response is the single answer to a Request.
type Response struct {
	// CorrelationID echoes Request.CorrelationID.
	CorrelationID string `json:"correlationId"`

	// ProjectID is LocalData's project id.
	ProjectID string `json:"projectId"`

	// SyncOperations is the reconcile result. Empty on failure.
	SyncOperations []reconcile.Operation `json:"syncOperations"`

	// Error describes the failure, if any.
	Error string `json:"error,omitempty"`

	// Err is the failure as an error value, for errors.Is matching in-process.
	Err error `json:"-"`
}
