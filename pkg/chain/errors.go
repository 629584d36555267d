package chain

import "github.com/pkg/errors"

var (
	// ErrFetch marks a failed or malformed chain payload. The previous
	// snapshot is retained unchanged and the fetch retried next cycle.
	ErrFetch = errors.New("chain fetch failed")

	ErrEmptySnapshot = errors.New("snapshot has no blocks")
	ErrGappedChain   = errors.New("block indices not gapless from 0")
	ErrBrokenLinkage = errors.New("previous hash linkage broken")
)
