package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/averonne/chainsight/internal/utils/logging"
)

// Task is one polling cycle. It should fan out its own network calls and
// respect ctx cancellation; errors are logged and retried at the next tick.
type Task func(ctx context.Context) error

// Runner drives a Task at a fixed interval. Cycles never overlap: a tick
// arriving while a run is still in flight is skipped rather than queued, so
// slow upstreams cannot grow unbounded concurrent requests.
type Runner struct {
	name     string
	interval time.Duration
	task     Task

	inFlight int32
	failures int32

	mu        sync.Mutex
	suspended bool
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewRunner(name string, interval time.Duration, task Task) *Runner {
	return &Runner{
		name:     name,
		interval: interval,
		task:     task,
	}
}

// Start begins ticking until ctx is cancelled or Stop is called. The first
// cycle runs immediately rather than waiting a full interval.
func (r *Runner) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	r.cancel = cancel
	r.done = make(chan struct{})
	r.mu.Unlock()

	go r.loop(ctx)
}

func (r *Runner) loop(ctx context.Context) {
	defer close(r.done)

	t := time.NewTicker(r.interval)
	defer t.Stop()

	r.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.tick(ctx)
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	r.mu.Lock()
	suspended := r.suspended
	r.mu.Unlock()

	if suspended {
		return
	}

	if !atomic.CompareAndSwapInt32(&r.inFlight, 0, 1) {
		logging.WithField("runner", r.name).Debug("previous cycle still in flight, skipping tick")
		return
	}

	go func() {
		defer atomic.StoreInt32(&r.inFlight, 0)

		if err := r.task(ctx); err != nil {
			n := atomic.AddInt32(&r.failures, 1)
			logging.WithError(err).WithFields(logging.Fields{
				"runner":      r.name,
				"consecutive": n,
			}).Warn("cycle failed")
			return
		}

		atomic.StoreInt32(&r.failures, 0)
	}()
}

// Suspend stops triggering new cycles. State owned by the task's component,
// such as the last good snapshot, is untouched.
func (r *Runner) Suspend() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.suspended = true
}

func (r *Runner) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.suspended = false
}

func (r *Runner) Suspended() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.suspended
}

// Stop cancels the timer and abandons any in-flight cycle via its context.
// Abandoned cycles must not apply their results.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	done := r.done
	r.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}
