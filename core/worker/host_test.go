package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"project-sync/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func snapshot(elements map[string]reconcile.Document) *reconcile.Snapshot {
	return &reconcile.Snapshot{
		Project:           reconcile.Document{"id": "p1", "type": "Default", "boardIds": []any{}, "symbolIds": []any{}},
		DesignSystem:      reconcile.Document{"id": "d1", "type": "DesignSystem"},
		ElementProperties: elements,
	}
}

func element(id, name string) reconcile.Document {
	return reconcile.Document{"id": id, "type": "Element", "elementType": "Board", "name": name}
}

func receive(t *testing.T, h *Host) Response {
	t.Helper()
	select {
	case resp, ok := <-h.Responses():
		require.True(t, ok, "responses channel closed")
		return resp
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for response")
	}
	return Response{}
}

func TestHost_RoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHost(Config{Workers: 1, QueueSize: 4}, zap.NewNop())
	h.Start(ctx)
	defer h.Close()

	local := snapshot(map[string]reconcile.Document{"e1": element("e1", "A"), "e2": element("e2", "B")})
	remote := snapshot(map[string]reconcile.Document{"e1": element("e1", "old"), "e3": element("e3", "C")})

	id, err := h.Post(ctx, Request{LocalData: local, RemoteData: remote})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	want, err := reconcile.Reconcile(local, remote)
	require.NoError(t, err)

	resp := receive(t, h)
	assert.Equal(t, id, resp.CorrelationID)
	assert.Equal(t, "p1", resp.ProjectID)
	assert.Equal(t, want, resp.SyncOperations)
	assert.Empty(t, resp.Error)
	assert.NoError(t, resp.Err)
}

func TestHost_CopiesSnapshotsOnPost(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHost(Config{Workers: 1, QueueSize: 1}, zap.NewNop())
	local := snapshot(map[string]reconcile.Document{"e1": element("e1", "A")})
	remote := snapshot(map[string]reconcile.Document{"e1": element("e1", "A")})

	// Post before Start so the request is still queued when the caller mutates.
	_, err := h.Post(ctx, Request{CorrelationID: "c1", LocalData: local, RemoteData: remote})
	require.NoError(t, err)
	local.ElementProperties["e1"]["name"] = "mutated after post"

	h.Start(ctx)
	defer h.Close()

	resp := receive(t, h)
	assert.Equal(t, "c1", resp.CorrelationID)
	assert.Empty(t, resp.SyncOperations)
}

func TestHost_IsolatesFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	h := NewHost(Config{Workers: 1, QueueSize: 4}, zap.NewNop()).
		WithReconcileFunc(func(local, remote *reconcile.Snapshot) ([]reconcile.Operation, error) {
			calls++
			switch calls {
			case 1:
				panic("corrupt document")
			case 2:
				return nil, errors.New("bad input")
			}
			return reconcile.Reconcile(local, remote)
		})
	h.Start(ctx)
	defer h.Close()

	s := snapshot(map[string]reconcile.Document{})
	for _, id := range []string{"panics", "fails", "works"} {
		_, err := h.Post(ctx, Request{CorrelationID: id, LocalData: s, RemoteData: s})
		require.NoError(t, err)
	}

	first := receive(t, h)
	assert.Equal(t, "panics", first.CorrelationID)
	assert.Contains(t, first.Error, "corrupt document")
	assert.NotNil(t, first.SyncOperations)

	second := receive(t, h)
	assert.Equal(t, "fails", second.CorrelationID)
	assert.EqualError(t, second.Err, "bad input")

	third := receive(t, h)
	assert.Equal(t, "works", third.CorrelationID)
	assert.NoError(t, third.Err)
	assert.Empty(t, third.SyncOperations)
}

func TestHost_MalformedRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHost(Config{}, zap.NewNop())
	h.Start(ctx)
	defer h.Close()

	_, err := h.Post(ctx, Request{LocalData: nil, RemoteData: snapshot(map[string]reconcile.Document{})})
	require.NoError(t, err)

	resp := receive(t, h)
	assert.ErrorIs(t, resp.Err, reconcile.ErrMalformedSnapshot)
	assert.Empty(t, resp.ProjectID)
}

func TestHost_PostAfterClose(t *testing.T) {
	h := NewHost(Config{}, zap.NewNop())
	h.Start(context.Background())
	h.Close()
	h.Close()

	_, err := h.Post(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrHostClosed)

	_, ok := <-h.Responses()
	assert.False(t, ok)
}

func TestHost_PostRespectsContext(t *testing.T) {
	h := NewHost(Config{QueueSize: 0}, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// No workers started and no buffer: the send can never complete.
	_, err := h.Post(ctx, Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHost_AnswersQueuedRequestsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	calls := 0
	h := NewHost(Config{Workers: 1, QueueSize: 4}, zap.NewNop()).
		WithReconcileFunc(func(local, remote *reconcile.Snapshot) ([]reconcile.Operation, error) {
			calls++
			if calls == 1 {
				started <- struct{}{}
				<-release
			}
			return []reconcile.Operation{}, nil
		})
	h.Start(ctx)

	s := snapshot(map[string]reconcile.Document{})
	for _, id := range []string{"a", "b", "c"} {
		_, err := h.Post(ctx, Request{CorrelationID: id, LocalData: s, RemoteData: s})
		require.NoError(t, err)
	}

	// "a" is running, "b" and "c" are queued when the context goes away.
	<-started
	cancel()
	close(release)
	go h.Close()

	var got []string
	timeout := time.After(2 * time.Second)
	for done := false; !done; {
		select {
		case resp, ok := <-h.Responses():
			if !ok {
				done = true
				break
			}
			assert.NoError(t, resp.Err)
			got = append(got, resp.CorrelationID)
		case <-timeout:
			t.Fatalf("timed out after %d responses", len(got))
		}
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)

	_, err := h.Post(context.Background(), Request{LocalData: s, RemoteData: s})
	assert.ErrorIs(t, err, ErrHostClosed)
}

func TestHost_CloseReleasesBlockedPost(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	h := NewHost(Config{Workers: 1, QueueSize: 0}, zap.NewNop()).
		WithReconcileFunc(func(local, remote *reconcile.Snapshot) ([]reconcile.Operation, error) {
			started <- struct{}{}
			<-release
			return nil, nil
		})
	h.Start(context.Background())

	s := snapshot(map[string]reconcile.Document{})
	_, err := h.Post(context.Background(), Request{CorrelationID: "a", LocalData: s, RemoteData: s})
	require.NoError(t, err)
	<-started

	// The only worker is busy and the queue is unbuffered, so this Post waits.
	posted := make(chan error, 1)
	go func() {
		_, err := h.Post(context.Background(), Request{CorrelationID: "b", LocalData: s, RemoteData: s})
		posted <- err
	}()

	closed := make(chan struct{})
	go func() {
		h.Close()
		close(closed)
	}()

	select {
	case err := <-posted:
		assert.ErrorIs(t, err, ErrHostClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("Post still blocked after Close")
	}

	close(release)
	resp := receive(t, h)
	assert.Equal(t, "a", resp.CorrelationID)

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}
}
