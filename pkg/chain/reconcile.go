package chain

import (
	"github.com/bits-and-blooms/bloom/v3"
)

const (
	maxSnapshotTxCount = 10000
	falsePositive      = 0.01
)

// Reconcile builds the unified transaction view for a snapshot: every
// transaction embedded in a block is tagged confirmed with its owning block
// index, every pool transaction still unconfirmed is tagged pending. A
// transaction id observed in a block wins over a stale pending-pool listing,
// so an id never appears in both halves of the view.
func Reconcile(s *Snapshot) []Transaction {
	confirmed := make(map[string]struct{})
	filter := bloom.NewWithEstimates(maxSnapshotTxCount, falsePositive)

	out := make([]Transaction, 0, len(s.PendingPool))

	for i := range s.Blocks {
		b := &s.Blocks[i]
		idx := b.Index

		for _, tx := range b.Transactions {
			tx.Status = TxStatusConfirmed
			blockIdx := idx
			tx.BlockIndex = &blockIdx

			confirmed[tx.ID] = struct{}{}
			filter.AddString(tx.ID)

			out = append(out, tx)
		}
	}

	for _, tx := range s.PendingPool {
		// bloom prefilter; exact map lookup settles false positives
		if filter.TestString(tx.ID) {
			if _, ok := confirmed[tx.ID]; ok {
				continue
			}
		}

		tx.Status = TxStatusPending
		tx.BlockIndex = nil

		out = append(out, tx)
	}

	return out
}

// Stats are the dashboard aggregates, fully recomputed from the current
// snapshot on each refresh so a missed update cannot cause counter drift.
type Stats struct {
	BlockCount      int      `json:"block_count"`
	PendingCount    int      `json:"pending_count"`
	TxCount         int      `json:"tx_count"`
	Validators      []string `json:"validators"`
	TotalTransacted float64  `json:"total_transacted"`
}

func ComputeStats(s *Snapshot) Stats {
	stats := Stats{
		BlockCount: len(s.Blocks),
		Validators: []string{},
	}

	seen := make(map[string]struct{})

	for i := range s.Blocks {
		b := &s.Blocks[i]

		if b.Validator != "" {
			if _, ok := seen[b.Validator]; !ok {
				seen[b.Validator] = struct{}{}
				stats.Validators = append(stats.Validators, b.Validator)
			}
		}

		for _, tx := range b.Transactions {
			stats.TxCount++
			stats.TotalTransacted += tx.Amount
		}
	}

	confirmed := make(map[string]struct{}, stats.TxCount)
	for i := range s.Blocks {
		for _, tx := range s.Blocks[i].Transactions {
			confirmed[tx.ID] = struct{}{}
		}
	}

	for _, tx := range s.PendingPool {
		if _, ok := confirmed[tx.ID]; !ok {
			stats.PendingCount++
		}
	}

	return stats
}
