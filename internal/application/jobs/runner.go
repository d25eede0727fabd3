// Package jobs runs training work off the request path: a submission returns
// immediately and the work executes on a bounded background goroutine.
package jobs

import (
	"context"
	"log/slog"
	"sync"
)

// Submitter accepts background work. Runner implements it; tests substitute
// a synchronous variant.
type Submitter interface {
	Submit(name string, fn func(ctx context.Context))
}

// Runner executes submitted functions on goroutines, at most limit at a
// time. Work beyond the limit waits for a slot instead of being rejected.
// Running jobs are never canceled; shutdown bounds how long we wait for
// them.
type Runner struct {
	logger *slog.Logger
	sem    chan struct{}
	quit   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

func NewRunner(limit int, logger *slog.Logger) *Runner {
	if limit < 1 {
		limit = 1
	}
	return &Runner{
		logger: logger,
		sem:    make(chan struct{}, limit),
		quit:   make(chan struct{}),
	}
}

// Submit schedules fn and returns immediately. The context handed to fn is
// detached from any request; a job outlives the RPC that submitted it.
func (r *Runner) Submit(name string, fn func(ctx context.Context)) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		r.logger.Warn("job rejected, runner is shut down", "job", name)
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()

		select {
		case r.sem <- struct{}{}:
		case <-r.quit:
			r.logger.Warn("queued job dropped on shutdown", "job", name)
			return
		}
		defer func() { <-r.sem }()

		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("job panicked", "job", name, "panic", rec)
			}
		}()
		fn(context.Background())
	}()
}

// Shutdown stops accepting submissions, drops queued jobs that have not
// started, and waits for running jobs until ctx expires.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.quit)
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
