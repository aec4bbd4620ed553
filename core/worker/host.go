package worker

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"project-sync/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReconcileFunc computes operations for a request. reconcile.Reconcile by default.
type ReconcileFunc func(local, remote *reconcile.Snapshot) ([]reconcile.Operation, error)

// Host is the message-driven reconciliation boundary.
type Host struct {
	logger    *zap.Logger
	workers   int
	reconcile ReconcileFunc

	in      chan Request
	out     chan Response
	closing chan struct{}

	// mu orders closed against posting.Add so that stop can wait for
	// every Post that passed the closed check before closing in.
	mu      sync.RWMutex
	closed  bool
	posting sync.WaitGroup

	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
	closeOnce sync.Once
}

// NewHost creates a host. Call Start before posting.
func NewHost(cfg Config, logger *zap.Logger) *Host {
	// Ensure pool and queue defaults if not set
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	queue := cfg.QueueSize
	if queue < 0 {
		queue = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Host{
		logger:    logger,
		workers:   workers,
		reconcile: reconcile.Reconcile,
		in:        make(chan Request, queue),
		out:       make(chan Response, queue),
		closing:   make(chan struct{}),
	}
}

// WithReconcileFunc replaces the reconcile function. Must be called before Start.
func (h *Host) WithReconcileFunc(fn ReconcileFunc) *Host {
	h.reconcile = fn
	return h
}

// Start launches the worker goroutines. When ctx is done the host stops
// accepting requests; everything already posted still runs and gets its
// response. Calling Start more than once has no effect.
func (h *Host) Start(ctx context.Context) {
	h.startOnce.Do(func() {
		h.wg.Add(h.workers)
		for i := 0; i < h.workers; i++ {
			go h.run(i)
		}

		go func() {
			select {
			case <-ctx.Done():
				h.stop()
			case <-h.closing:
			}
		}()

		h.logger.Info("Execution host started", zap.Int("workers", h.workers))
	})
}

// Post enqueues a request and returns its correlation id. Both snapshots are
// deep-copied before Post returns. Post blocks while the queue is full,
// until ctx is done or the host stops accepting requests.
func (h *Host) Post(ctx context.Context, req Request) (string, error) {
	if req.CorrelationID == "" {
		req.CorrelationID = uuid.NewString()
	}
	req.LocalData = req.LocalData.Clone()
	req.RemoteData = req.RemoteData.Clone()

	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return "", ErrHostClosed
	}
	h.posting.Add(1)
	h.mu.RUnlock()
	defer h.posting.Done()

	select {
	case h.in <- req:
		return req.CorrelationID, nil
	case <-h.closing:
		return "", ErrHostClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Responses returns the outbound channel. It is closed by Close once every
// worker has exited. Workers block until their response is received, so
// the channel must be drained for Close to return.
func (h *Host) Responses() <-chan Response {
	return h.out
}

// stop refuses new requests and closes the inbound queue once no Post is
// still sending. Workers then drain the queue and exit.
func (h *Host) stop() {
	h.stopOnce.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.closing)
		h.mu.Unlock()

		h.posting.Wait()
		close(h.in)
	})
}

// Close stops accepting requests, waits for workers to answer every queued
// request, and closes the outbound channel.
func (h *Host) Close() {
	h.closeOnce.Do(func() {
		h.stop()
		h.wg.Wait()
		close(h.out)
		h.logger.Info("Execution host stopped")
	})
}

func (h *Host) run(id int) {
	defer h.wg.Done()
	for req := range h.in {
		h.out <- h.handle(req, id)
	}
}

// handle runs one request. A panic is turned into an error response.
func (h *Host) handle(req Request, workerID int) (resp Response) {
	resp = Response{
		CorrelationID:  req.CorrelationID,
		ProjectID:      req.LocalData.ProjectID(),
		SyncOperations: []reconcile.Operation{},
	}
	l := h.logger.With(
		zap.Int("worker", workerID),
		zap.String("correlation_id", req.CorrelationID),
		zap.String("project_id", resp.ProjectID),
	)

	defer func() {
		if r := recover(); r != nil {
			l.Error("Reconcile panicked", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			resp.SyncOperations = []reconcile.Operation{}
			resp.Err = fmt.Errorf("reconcile panicked: %v", r)
			resp.Error = resp.Err.Error()
		}
	}()

	ops, err := h.reconcile(req.LocalData, req.RemoteData)
	if err != nil {
		l.Warn("Reconcile failed", zap.Error(err))
		resp.Err = err
		resp.Error = err.Error()
		return resp
	}

	resp.SyncOperations = ops
	l.Debug("Reconcile completed", zap.Int("operations", len(ops)))
	return resp
}
