// Package remote defines the persistent document store that reconciliation
// writes to. Implementations live in sqlstore (GORM) and objectstore (MinIO/S3).
package remote

import (
	"context"
	"errors"
	"fmt"

	"project-sync/core/reconcile"
)

// ErrProjectNotFound is returned when the store holds no documents for a project.
var ErrProjectNotFound = errors.New("project not found in remote store")

const (
	BackendSQL    = "sql"
	BackendObject = "object"
)

// Config selects and tunes the remote store.
type Config struct {
	// Backend is the store implementation (sql, object).
	Backend string `mapstructure:"backend" default:"sql"`
	// TimeoutSeconds bounds each remote load and apply.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Store materializes snapshots and applies reconciliation operations.
type Store interface {
	reconcile.Applier
	reconcile.BatchWriter
	reconcile.BatchDeleter

	// LoadSnapshot reads every document of a project into a normalized snapshot.
	// Returns ErrProjectNotFound when the project has no documents.
	LoadSnapshot(ctx context.Context, projectID string) (*reconcile.Snapshot, error)
}

// Assemble routes documents into a snapshot by entity kind: one project, one
// design system, assets, and every other kind under ElementProperties.
// ids maps each document to its id; docs is visited in order.
func Assemble(projectID string, ids []string, docs []reconcile.Document) (*reconcile.Snapshot, error) {
	s := &reconcile.Snapshot{ElementProperties: map[string]reconcile.Document{}}

	for i, doc := range docs {
		id := ids[i]
		kind, err := reconcile.Classify(doc)
		if err != nil {
			return nil, err
		}
		switch kind {
		case reconcile.EntityProject:
			if s.Project != nil {
				return nil, fmt.Errorf("%w: project %s has more than one project record", reconcile.ErrMalformedSnapshot, projectID)
			}
			s.Project = doc
		case reconcile.EntityDesignSystem:
			if s.DesignSystem != nil {
				return nil, fmt.Errorf("%w: project %s has more than one design system", reconcile.ErrMalformedSnapshot, projectID)
			}
			s.DesignSystem = doc
		case reconcile.EntityAsset:
			if s.Assets == nil {
				s.Assets = map[string]reconcile.Document{}
			}
			s.Assets[id] = doc
		default:
			s.ElementProperties[id] = doc
		}
	}

	return s, nil
}
