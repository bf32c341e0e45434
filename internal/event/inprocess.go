package event

import (
	"context"
	"sync"
)

// InProcessPublisher runs the cascade job in a background goroutine of the
// API process. The job outlives the request that deleted the trip: it keeps
// the request's values but not its cancellation. Shutdown bounds it instead.
type InProcessPublisher struct {
	runner Runner
	wg     sync.WaitGroup
	stop   context.Context
	cancel context.CancelFunc
}

// NewInProcessPublisher constructs a publisher that hands deletions to runner.
func NewInProcessPublisher(runner Runner) *InProcessPublisher {
	stop, cancel := context.WithCancel(context.Background())
	return &InProcessPublisher{runner: runner, stop: stop, cancel: cancel}
}

// PublishTripDeleted starts the cascade for e and returns immediately.
// The job logs its own outcome.
func (p *InProcessPublisher) PublishTripDeleted(ctx context.Context, e TripDeleted) error {
	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	release := context.AfterFunc(p.stop, cancel)
	p.wg.Go(func() {
		defer cancel()
		defer release()
		_ = p.runner.Run(jobCtx, e.Path())
	})
	return nil
}

// Shutdown waits for running jobs to finish. If ctx is done first, every job
// still running is cancelled and ctx.Err() is returned without waiting for
// them to unwind. Jobs published after that start already cancelled.
func (p *InProcessPublisher) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}
