package localcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"project-sync/core/reconcile"
	"project-sync/core/snapshot"

	"go.etcd.io/bbolt"
)

var (
	// ErrSnapshotNotFound is returned when no snapshot is cached for a project.
	ErrSnapshotNotFound = errors.New("snapshot not found in local cache")

	// ErrCacheClosed is returned when the cache has been closed.
	ErrCacheClosed = errors.New("local cache closed")
)

// snapshotsBucket stores one JSON snapshot per project id.
var snapshotsBucket = []byte("snapshots")

// Cache is a BoltDB-backed snapshot cache.
type Cache struct {
	// mu guards db against Close running alongside readers and writers
	mu sync.RWMutex
	db *bbolt.DB
}

// Open opens or creates the cache file.
func Open(cfg Config) (*Cache, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 5
	}

	db, err := bbolt.Open(cfg.Path, 0o600, &bbolt.Options{Timeout: time.Duration(timeout) * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database file.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Put stores s under its project id, replacing any previous snapshot.
func (c *Cache) Put(ctx context.Context, s *reconcile.Snapshot) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.db == nil {
		return ErrCacheClosed
	}
	projectID := s.ProjectID()
	if projectID == "" {
		return fmt.Errorf("%w: missing project.id", reconcile.ErrMalformedSnapshot)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	err = c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotsBucket).Put([]byte(projectID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", projectID, err)
	}
	return nil
}

// Get returns the cached snapshot for projectID with normalized timestamps.
func (c *Cache) Get(ctx context.Context, projectID string) (*reconcile.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.db == nil {
		return nil, ErrCacheClosed
	}

	var data []byte
	err := c.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(snapshotsBucket).Get([]byte(projectID))
		if v == nil {
			return ErrSnapshotNotFound
		}
		// v is only valid inside the transaction
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s, err := snapshot.Decode(data, snapshot.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("cached snapshot %s: %w", projectID, err)
	}
	return snapshot.Normalize(s), nil
}

// Delete removes the snapshot for projectID. Deleting a missing key is not an error.
func (c *Cache) Delete(ctx context.Context, projectID string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.db == nil {
		return ErrCacheClosed
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotsBucket).Delete([]byte(projectID))
	})
}

// List returns the ids of all cached projects in key order.
func (c *Cache) List(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.db == nil {
		return nil, ErrCacheClosed
	}
	ids := []string{}
	err := c.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotsBucket).ForEach(func(k, _ []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})
	return ids, err
}
