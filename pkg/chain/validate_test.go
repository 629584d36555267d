package chain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidChain(t *testing.T) {
	v := NewSnapshotValidator()

	s := makeChain(5)

	assert.NoError(t, v.IsValid(s))
}

func TestEmptySnapshot(t *testing.T) {
	v := NewSnapshotValidator()

	err := v.IsValid(&Snapshot{})
	assert.ErrorIs(t, err, ErrEmptySnapshot)
}

func TestGappedChain(t *testing.T) {
	v := NewSnapshotValidator()

	s := makeChain(5)
	s.Blocks[3].Index = 7

	err := v.IsValid(s)
	assert.ErrorIs(t, err, ErrGappedChain)
}

func TestBrokenLinkage(t *testing.T) {
	v := NewSnapshotValidator()

	s := makeChain(5)
	s.Blocks[2].PreviousHash = "deadbeef"

	err := v.IsValid(s)
	assert.True(t, errors.Is(err, ErrBrokenLinkage))
}

func TestLinkageHolds(t *testing.T) {
	s := makeChain(10)

	for i := 1; i < len(s.Blocks); i++ {
		assert.Equal(t, s.Blocks[i-1].Hash, s.Blocks[i].PreviousHash)
	}
}

func TestNegativeAmountRejected(t *testing.T) {
	v := NewSnapshotValidator()

	s := makeChain(3)
	s.Blocks[1].Transactions[0].Amount = -5
	s.Blocks[1].Hash = s.Blocks[1].ComputeHash()
	s.Blocks[2].PreviousHash = s.Blocks[1].Hash
	s.Blocks[2].Hash = s.Blocks[2].ComputeHash()

	assert.Error(t, v.IsValid(s))
}
