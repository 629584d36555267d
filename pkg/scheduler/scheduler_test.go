package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunnerTicks(t *testing.T) {
	var runs int32

	r := NewRunner("test", 20*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	r.Start(context.Background())
	time.Sleep(110 * time.Millisecond)
	r.Stop()

	n := atomic.LoadInt32(&runs)
	assert.GreaterOrEqual(t, n, int32(3))
}

func TestRunnerSkipsOverlappingCycles(t *testing.T) {
	var started int32

	r := NewRunner("slow", 10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&started, 1)

		select {
		case <-ctx.Done():
		case <-time.After(200 * time.Millisecond):
		}

		return nil
	})

	r.Start(context.Background())
	time.Sleep(100 * time.Millisecond)
	r.Stop()

	// ten ticks elapsed but the first cycle was still in flight
	assert.Equal(t, int32(1), atomic.LoadInt32(&started))
}

func TestRunnerSuspendResume(t *testing.T) {
	var runs int32

	r := NewRunner("toggle", 10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	r.Suspend()
	r.Start(context.Background())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&runs))
	assert.True(t, r.Suspended())

	r.Resume()
	time.Sleep(50 * time.Millisecond)
	r.Stop()

	assert.Greater(t, atomic.LoadInt32(&runs), int32(0))
	assert.False(t, r.Suspended())
}

func TestRunnerStopCancelsInFlight(t *testing.T) {
	cancelled := make(chan struct{})

	r := NewRunner("cancel", 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	})

	r.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	r.Stop()

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("in-flight cycle was not cancelled")
	}
}

func TestRunnerFailuresKeepTicking(t *testing.T) {
	var runs int32

	r := NewRunner("flaky", 15*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return context.DeadlineExceeded
	})

	r.Start(context.Background())
	time.Sleep(80 * time.Millisecond)
	r.Stop()

	assert.GreaterOrEqual(t, atomic.LoadInt32(&runs), int32(2))
}
