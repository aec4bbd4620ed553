// Package worker runs reconciliation off the caller's goroutine.
//
// A Host owns a fixed pool of worker goroutines fed by an inbound request
// queue. Every request produces exactly one Response on the outbound
// channel; a failing or panicking request yields a Response carrying the
// error and never stops the pool. Snapshots are deep-copied when posted, so
// callers keep ownership of what they pass in.
//
// Shutdown only stops intake: once the Start context is done or Close is
// called, Post fails with ErrHostClosed, while every request already
// accepted still runs and is answered before Responses is closed.
//
// Responses may arrive out of request order. Callers correlate them by
// CorrelationID, or use a Dispatcher, which does that and lets a caller
// block on its own response with Call.
//
// # Usage
//
//	host := worker.NewHost(cfg.Worker, logger)
//	host.Start(ctx)
//	defer host.Close()
//
//	d := worker.NewDispatcher(host, logger)
//	resp, err := d.Call(ctx, local, remote)
package worker
