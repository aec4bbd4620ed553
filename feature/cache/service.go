package cache

import (
	"context"
	"fmt"

	"project-sync/core/localcache"
	"project-sync/core/reconcile"

	"go.uber.org/zap"
)

// Store is the part of the local cache the feature uses.
type Store interface {
	Put(ctx context.Context, s *reconcile.Snapshot) error
	Get(ctx context.Context, projectID string) (*reconcile.Snapshot, error)
	Delete(ctx context.Context, projectID string) error
	List(ctx context.Context) ([]string, error)
}

var _ Store = (*localcache.Cache)(nil)

// Service validates and stores snapshots.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a new cache service.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Put validates s and caches it under projectID.
func (s *Service) Put(ctx context.Context, projectID string, snap *reconcile.Snapshot) (int, error) {
	docs, err := reconcile.Flatten(snap)
	if err != nil {
		return 0, err
	}
	if id := snap.ProjectID(); id != projectID {
		return 0, fmt.Errorf("%w: project id %q does not match %q", reconcile.ErrMalformedSnapshot, id, projectID)
	}
	if err := s.store.Put(ctx, snap); err != nil {
		return 0, err
	}
	return docs.Len(), nil
}

// Get returns the cached snapshot of projectID.
func (s *Service) Get(ctx context.Context, projectID string) (*reconcile.Snapshot, error) {
	return s.store.Get(ctx, projectID)
}

// Delete drops the cached snapshot of projectID.
func (s *Service) Delete(ctx context.Context, projectID string) error {
	return s.store.Delete(ctx, projectID)
}

// List returns the ids of every cached project.
func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}
