package reputation

import (
	"context"
	"sync"
	"time"

	"github.com/averonne/chainsight/internal/utils/logging"
	"github.com/jpillora/backoff"
	"github.com/pkg/errors"
)

const baselineReputation = 100

// ProfilePatch carries the fields UpdateProfile is allowed to merge. A nil
// field is left untouched; reputation, level and badges are never writable
// through a patch.
type ProfilePatch struct {
	Name        *string
	Bio         *string
	Email       *string
	StakeAmount *float64
}

// Engine is the reputation state machine for the session's single identity
// profile. All transitions are synchronous and atomic: a rejected operation
// leaves the profile exactly as it was.
type Engine struct {
	store  Store
	levels *LevelTable

	mu      sync.Mutex
	profile *Profile
	dirty   bool

	flushCh chan struct{}
}

type Option func(*Engine)

func WithLevelTable(t *LevelTable) Option {
	return func(e *Engine) {
		e.levels = t
	}
}

func NewEngine(ctx context.Context, store Store, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:   store,
		levels:  NewLevelTable(nil),
		flushCh: make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(e)
	}

	p, err := store.Load(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "loading stored profile")
	}
	e.profile = p

	return e, nil
}

// Register creates the session profile. Rejected while one exists, since a
// second registration would orphan the previous address.
func (e *Engine) Register(ctx context.Context, name string) (*Profile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.profile != nil {
		return nil, ErrAlreadyRegistered
	}

	p := &Profile{
		Name:             name,
		Address:          NewAddress(),
		Reputation:       baselineReputation,
		Level:            e.levels.LevelFor(baselineReputation),
		Badges:           []Badge{},
		RegistrationDate: time.Now(),
	}

	e.profile = p

	if err := e.persist(ctx); err != nil {
		return p.clone(), err
	}

	return p.clone(), nil
}

// AwardBadge appends the badge and applies its reputation delta together or
// not at all; a reader never observes a badge without its bump.
func (e *Engine) AwardBadge(ctx context.Context, b Badge, delta uint64) (*Profile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.profile == nil {
		return nil, ErrNotRegistered
	}

	if e.profile.hasBadge(b.ID) {
		return nil, ErrDuplicateBadge
	}

	if b.Date.IsZero() {
		b.Date = time.Now()
	}

	p := e.profile.clone()
	p.Badges = append(p.Badges, b)
	p.Reputation += delta
	p.Level = e.levels.LevelFor(p.Reputation)

	e.profile = p

	if err := e.persist(ctx); err != nil {
		return p.clone(), err
	}

	return p.clone(), nil
}

// UpdateProfile merges the allowed fields, last write wins per field.
func (e *Engine) UpdateProfile(ctx context.Context, patch ProfilePatch) (*Profile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.profile == nil {
		return nil, ErrNotRegistered
	}

	p := e.profile.clone()

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.StakeAmount != nil {
		p.StakeAmount = *patch.StakeAmount
	}

	e.profile = p

	if err := e.persist(ctx); err != nil {
		return p.clone(), err
	}

	return p.clone(), nil
}

// Logout clears the profile entirely. Terminal for the session: a later
// Register starts fresh with a new address.
func (e *Engine) Logout(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.profile == nil {
		return ErrNotRegistered
	}

	e.profile = nil
	e.dirty = false

	if err := e.store.Clear(ctx); err != nil {
		return errors.Wrap(ErrPersistence, err.Error())
	}

	return nil
}

// Profile returns the current read model, or ErrNotRegistered.
func (e *Engine) Profile() (*Profile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.profile == nil {
		return nil, ErrNotRegistered
	}

	return e.profile.clone(), nil
}

// persist writes through to the store. On failure the in-memory transition
// stays committed: the profile is marked dirty, the background flusher is
// woken and ErrPersistence is surfaced so the caller knows the transition is
// not yet durable.
//
// assumes locked e.mu
func (e *Engine) persist(ctx context.Context) error {
	if err := e.store.Save(ctx, e.profile); err != nil {
		logging.WithError(err).Warn("profile store unavailable, holding profile in memory")
		e.dirty = true

		select {
		case e.flushCh <- struct{}{}:
		default:
		}

		return errors.Wrap(ErrPersistence, err.Error())
	}

	e.dirty = false

	return nil
}

// Run retries pending profile flushes with exponential backoff until ctx is
// cancelled.
func (e *Engine) Run(ctx context.Context) {
	bo := &backoff.Backoff{
		Min: time.Second,
		Max: 5 * time.Minute,
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.flushCh:
		}

		bo.Reset()

		for {
			if e.flush(ctx) {
				break
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(bo.Duration()):
			}
		}
	}
}

func (e *Engine) flush(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.dirty || e.profile == nil {
		return true
	}

	if err := e.store.Save(ctx, e.profile); err != nil {
		logging.WithError(err).Debug("profile flush retry failed")
		return false
	}

	e.dirty = false

	return true
}
