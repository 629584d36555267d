package chain

import (
	"github.com/averonne/chainsight/internal/utils/logging"
	"github.com/pkg/errors"
)

// Validator checks a snapshot before it replaces the current one.
type Validator interface {
	IsValid(s *Snapshot) error
}

var _ Validator = (*SnapshotValidator)(nil)

type SnapshotValidator struct{}

func NewSnapshotValidator() *SnapshotValidator {
	return &SnapshotValidator{}
}

// IsValid enforces ascending gapless indices starting at 0 and previous-hash
// linkage between adjacent blocks. A recomputed hash that disagrees with the
// reported one is only logged; node content is treated as already validated.
func (v *SnapshotValidator) IsValid(s *Snapshot) error {
	if len(s.Blocks) == 0 {
		return ErrEmptySnapshot
	}

	for i, b := range s.Blocks {
		if b.Index != uint64(i) {
			return errors.Wrapf(ErrGappedChain, "block %d has index %d", i, b.Index)
		}

		if i > 0 && b.PreviousHash != s.Blocks[i-1].Hash {
			return errors.Wrapf(ErrBrokenLinkage, "block %d", b.Index)
		}

		if h := b.ComputeHash(); h != b.Hash {
			logging.WithField("block", b.Index).Warn("recomputed block hash differs from reported hash")
		}

		if err := v.validTxs(&b); err != nil {
			return err
		}
	}

	return nil
}

func (v *SnapshotValidator) validTxs(b *Block) error {
	for _, tx := range b.Transactions {
		if tx.Amount < 0 {
			return errors.Errorf("block %d tx %s has negative amount", b.Index, tx.ID)
		}
	}

	return nil
}
