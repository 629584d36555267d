package chain

import (
	"context"
	"sync"

	"github.com/averonne/chainsight/internal/utils/logging"
	"github.com/pkg/errors"
)

const notifyBuffer = 16

// BlockEvent is emitted exactly once per watermark advance, carrying the
// newest block of the refresh that moved the watermark.
type BlockEvent struct {
	Block  Block
	Height uint64
}

// Synchronizer maintains the most recent snapshot of the current node and
// derives change events. The snapshot is replaced atomically; a failed or
// invalid refresh leaves the previous one untouched.
type Synchronizer struct {
	client    Client
	validator Validator

	mu       sync.RWMutex
	snapshot *Snapshot
	stats    Stats
	view     []Transaction

	// highest block index previously observed; -1 disables new-block
	// detection until a baseline exists
	watermark int64

	notify chan BlockEvent
}

func NewSynchronizer(client Client, validator Validator) *Synchronizer {
	if validator == nil {
		validator = NewSnapshotValidator()
	}

	return &Synchronizer{
		client:    client,
		validator: validator,
		watermark: -1,
		notify:    make(chan BlockEvent, notifyBuffer),
	}
}

// Refresh fetches, validates and installs a new snapshot, recomputes the
// reconciled view and aggregates, and emits at most one new-block event.
func (s *Synchronizer) Refresh(ctx context.Context) (*Snapshot, error) {
	snap, err := s.client.ChainSnapshot(ctx)
	if err != nil {
		logging.WithError(err).Warn("chain refresh failed, retaining snapshot")
		return nil, err
	}

	if err := s.validator.IsValid(snap); err != nil {
		logging.WithError(err).Warn("rejecting malformed snapshot")
		return nil, errors.Wrap(ErrFetch, err.Error())
	}

	view := Reconcile(snap)
	stats := ComputeStats(snap)

	s.mu.Lock()
	s.snapshot = snap
	s.view = view
	s.stats = stats

	height := snap.Height()
	baseline := s.watermark < 0
	advanced := height > s.watermark

	if advanced {
		s.watermark = height
	}
	s.mu.Unlock()

	// edge-triggered: the first refresh only establishes the baseline, and
	// re-observing the same height emits nothing
	if advanced && !baseline {
		s.emit(BlockEvent{Block: *snap.Newest(), Height: uint64(height)})
	}

	return snap, nil
}

func (s *Synchronizer) emit(e BlockEvent) {
	select {
	case s.notify <- e:
	default:
		// slow consumer; superseded heights are dropped, never duplicated
		logging.WithField("height", e.Height).Debug("dropping block event, buffer full")
	}
}

// Notifications never emits more than once per height increase.
func (s *Synchronizer) Notifications() <-chan BlockEvent {
	return s.notify
}

// Snapshot returns the last good snapshot, which survives suspension and
// failed refreshes. Nil before the first successful refresh.
func (s *Synchronizer) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot
}

// Transactions returns the reconciled confirmed-plus-pending view of the
// current snapshot.
func (s *Synchronizer) Transactions() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.view
}

func (s *Synchronizer) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stats
}

func (s *Synchronizer) Watermark() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.watermark
}
