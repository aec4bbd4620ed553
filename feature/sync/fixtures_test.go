package sync

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	stdsync "sync"
	"sync/atomic"
	"testing"
	"time"

	"project-sync/core/localcache"
	"project-sync/core/reconcile"
	"project-sync/core/remote"
	"project-sync/core/worker"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryStore is an in-memory remote.Store.
type memoryStore struct {
	mu        stdsync.Mutex
	projects  map[string]map[string]reconcile.Document
	loads     atomic.Int32
	loadDelay time.Duration
	failWrite error
}

var _ remote.Store = (*memoryStore)(nil)

func newMemoryStore() *memoryStore {
	return &memoryStore{projects: map[string]map[string]reconcile.Document{}}
}

func (m *memoryStore) seed(s *reconcile.Snapshot) {
	docs, err := reconcile.Flatten(s)
	if err != nil {
		panic(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	project := map[string]reconcile.Document{}
	for _, id := range docs.IDs() {
		doc, _ := docs.Get(id)
		project[id] = doc
	}
	m.projects[s.ProjectID()] = project
}

func (m *memoryStore) LoadSnapshot(ctx context.Context, projectID string) (*reconcile.Snapshot, error) {
	m.loads.Add(1)
	if m.loadDelay > 0 {
		time.Sleep(m.loadDelay)
	}

	m.mu.Lock()
	project, ok := m.projects[projectID]
	var ids []string
	var docs []reconcile.Document
	for id, doc := range project {
		ids = append(ids, id)
		docs = append(docs, doc)
	}
	m.mu.Unlock()

	if !ok || len(project) == 0 {
		return nil, fmt.Errorf("%w: %s", remote.ErrProjectNotFound, projectID)
	}
	return remote.Assemble(projectID, ids, docs)
}

func (m *memoryStore) WriteDocument(ctx context.Context, projectID string, op reconcile.Operation) error {
	if m.failWrite != nil {
		return m.failWrite
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.projects[projectID] == nil {
		m.projects[projectID] = map[string]reconcile.Document{}
	}
	m.projects[projectID][op.DocumentID] = op.Document
	return nil
}

func (m *memoryStore) DeleteDocument(ctx context.Context, projectID string, op reconcile.Operation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.projects[projectID], op.DocumentID)
	return nil
}

func (m *memoryStore) WriteDocuments(ctx context.Context, projectID string, ops []reconcile.Operation) error {
	for _, op := range ops {
		if err := m.WriteDocument(ctx, projectID, op); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryStore) DeleteDocuments(ctx context.Context, projectID string, ops []reconcile.Operation) error {
	for _, op := range ops {
		if err := m.DeleteDocument(ctx, projectID, op); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryStore) ids(projectID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id := range m.projects[projectID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func snapshotWith(elements ...string) *reconcile.Snapshot {
	s := &reconcile.Snapshot{
		Project:           reconcile.Document{"id": "p1", "type": "Default"},
		DesignSystem:      reconcile.Document{"id": "d1", "type": "DesignSystem"},
		ElementProperties: map[string]reconcile.Document{},
	}
	for _, id := range elements {
		s.ElementProperties[id] = reconcile.Document{"id": id, "type": "Element", "name": id}
	}
	return s
}

type testEnv struct {
	service *Service
	cache   *localcache.Cache
	store   *memoryStore
}

func setupService(t *testing.T) *testEnv {
	ctx, cancel := context.WithCancel(context.Background())

	host := worker.NewHost(worker.Config{Workers: 2, QueueSize: 4}, zap.NewNop())
	host.Start(ctx)
	dispatcher := worker.NewDispatcher(host, zap.NewNop())

	cache, err := localcache.Open(localcache.Config{Path: filepath.Join(t.TempDir(), "cache.db"), TimeoutSeconds: 1})
	require.NoError(t, err)

	t.Cleanup(func() {
		host.Close()
		cancel()
		cache.Close()
	})

	store := newMemoryStore()
	return &testEnv{
		service: NewService(dispatcher, cache, store, time.Second, zap.NewNop()),
		cache:   cache,
		store:   store,
	}
}
