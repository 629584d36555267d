package chain

import (
	"fmt"
	"time"
)

func makeTx(id string, amount float64) Transaction {
	return Transaction{
		ID:        id,
		Sender:    "CSXSENDER",
		Recipient: "CSXRECIPIENT",
		Amount:    amount,
		Timestamp: float64(time.Now().Unix()),
		Kind:      TxKindTransfer,
	}
}

// makeChain builds a well-linked snapshot of n blocks, one transaction per
// block past genesis.
func makeChain(n int) *Snapshot {
	s := &Snapshot{}

	prev := "0"
	for i := 0; i < n; i++ {
		b := Block{
			Index:        uint64(i),
			PreviousHash: prev,
			Timestamp:    float64(time.Now().Unix()),
			Validator:    fmt.Sprintf("validator-%d", i%3),
		}

		if i > 0 {
			b.Transactions = []Transaction{makeTx(fmt.Sprintf("tx-%d", i), float64(i)*10)}
		}

		b.Hash = b.ComputeHash()
		prev = b.Hash

		s.Blocks = append(s.Blocks, b)
	}

	return s
}
