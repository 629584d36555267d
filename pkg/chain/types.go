package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

type TxKind string

const (
	TxKindTransfer TxKind = "transfer"
	TxKindStake    TxKind = "stake"
	TxKindUnstake  TxKind = "unstake"
)

type TxStatus int8

const (
	TxStatusPending TxStatus = iota + 1
	TxStatusConfirmed
)

func (s TxStatus) String() string {
	switch s {
	case TxStatusPending:
		return "pending"
	case TxStatusConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Transaction moves one-way from pending to confirmed. BlockIndex is nil
// while the transaction is only held in a node's pending pool.
type Transaction struct {
	ID         string   `json:"id"`
	Sender     string   `json:"sender"`
	Recipient  string   `json:"recipient"`
	Amount     float64  `json:"amount"`
	Timestamp  float64  `json:"timestamp"`
	Kind       TxKind   `json:"kind"`
	Status     TxStatus `json:"-"`
	BlockIndex *uint64  `json:"-"`
}

// Block is immutable once observed.
type Block struct {
	Index        uint64        `json:"index"`
	Hash         string        `json:"hash"`
	PreviousHash string        `json:"previous_hash"`
	Timestamp    float64       `json:"timestamp"`
	Nonce        uint64        `json:"nonce"`
	Validator    string        `json:"validator"`
	Transactions []Transaction `json:"transactions"`
}

// ComputeHash recalculates the block hash from its contents: SHA-256 over
// the canonical JSON of the hashed fields with sorted keys.
func (b *Block) ComputeHash() string {
	txs := make([]map[string]interface{}, 0, len(b.Transactions))
	for _, tx := range b.Transactions {
		txs = append(txs, map[string]interface{}{
			"id":        tx.ID,
			"sender":    tx.Sender,
			"recipient": tx.Recipient,
			"amount":    tx.Amount,
			"timestamp": tx.Timestamp,
			"kind":      tx.Kind,
		})
	}

	payload := map[string]interface{}{
		"index":         b.Index,
		"previous_hash": b.PreviousHash,
		"timestamp":     b.Timestamp,
		"transactions":  txs,
		"validator":     b.Validator,
	}

	d, _ := json.Marshal(payload)
	h := sha256.Sum256(d)

	return hex.EncodeToString(h[:])
}

// Snapshot is the full observed state of the current node. Owned exclusively
// by the Synchronizer and replaced atomically each refresh.
type Snapshot struct {
	Blocks      []Block
	PendingPool []Transaction
}

// Height returns the highest block index, or -1 for an empty chain.
func (s *Snapshot) Height() int64 {
	if len(s.Blocks) == 0 {
		return -1
	}

	return int64(s.Blocks[len(s.Blocks)-1].Index)
}

// Newest returns the highest block, or nil for an empty chain.
func (s *Snapshot) Newest() *Block {
	if len(s.Blocks) == 0 {
		return nil
	}

	return &s.Blocks[len(s.Blocks)-1]
}
