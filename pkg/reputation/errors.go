package reputation

import "github.com/pkg/errors"

var (
	// ErrAlreadyRegistered rejects a second registration while a profile
	// exists; overwriting would orphan the previous address on-chain.
	ErrAlreadyRegistered = errors.New("profile already registered")

	// ErrDuplicateBadge rejects an award whose badge id is already held.
	ErrDuplicateBadge = errors.New("badge already awarded")

	ErrNotRegistered = errors.New("no profile registered")
	ErrNotFound      = errors.New("not found")

	// ErrPersistence wraps store failures; the profile is held in memory
	// and flushed in the background until the store recovers.
	ErrPersistence = errors.New("profile store unavailable")
)
