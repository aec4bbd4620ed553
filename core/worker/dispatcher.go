package worker

import (
	"context"
	"sync"

	"project-sync/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher routes host responses back to the goroutine that posted the request.
type Dispatcher struct {
	host   *Host
	logger *zap.Logger

	mu      sync.Mutex
	waiters map[string]chan Response
	closed  bool
	done    chan struct{}
}

// NewDispatcher starts consuming host.Responses(). A host should have at most
// one dispatcher; responses nobody waits for are dropped.
func NewDispatcher(host *Host, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		host:    host,
		logger:  logger,
		waiters: make(map[string]chan Response),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Call posts a request and waits for its response. ctx bounds only the wait:
// once posted, the request runs to completion and a late response is dropped.
// When the response carries an error, Call returns it along with the response.
func (d *Dispatcher) Call(ctx context.Context, local, remote *reconcile.Snapshot) (*Response, error) {
	id := uuid.NewString()
	ch := make(chan Response, 1)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, ErrHostClosed
	}
	d.waiters[id] = ch
	d.mu.Unlock()

	if _, err := d.host.Post(ctx, Request{CorrelationID: id, LocalData: local, RemoteData: remote}); err != nil {
		d.forget(id)
		return nil, err
	}

	select {
	case resp := <-ch:
		return &resp, resp.Err
	case <-ctx.Done():
		d.forget(id)
		return nil, ctx.Err()
	}
}

// Done is closed once the host's response channel has been drained and closed.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

func (d *Dispatcher) forget(id string) {
	d.mu.Lock()
	delete(d.waiters, id)
	d.mu.Unlock()
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for resp := range d.host.Responses() {
		d.mu.Lock()
		ch, ok := d.waiters[resp.CorrelationID]
		delete(d.waiters, resp.CorrelationID)
		d.mu.Unlock()

		if !ok {
			d.logger.Debug("Dropping response without waiter", zap.String("correlation_id", resp.CorrelationID))
			continue
		}
		ch <- resp
	}

	d.mu.Lock()
	d.closed = true
	for id, ch := range d.waiters {
		ch <- Response{CorrelationID: id, Err: ErrHostClosed, Error: ErrHostClosed.Error()}
		delete(d.waiters, id)
	}
	d.mu.Unlock()
}
