package health

import (
	"time"
)

// Node is a registered chain node endpoint. Immutable after config load.
type Node struct {
	URL         string
	DisplayName string
}

type State int8

const (
	StateOnline State = iota + 1
	StateOffline
	StateError
)

func (s State) String() string {
	switch s {
	case StateOnline:
		return "online"
	case StateOffline:
		return "offline"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Status is a point-in-time liveness classification for a single node.
// It is produced fresh each poll cycle and replaced wholesale, never merged.
type Status struct {
	Node            Node
	State           State
	LastBlockHeight *uint64
	PeerCount       *int
	ObservedAt      time.Time
}

// NodeInfo is the status payload reported by a node.
type NodeInfo struct {
	Reachable       bool    `json:"reachable"`
	LastBlockHeight *uint64 `json:"last_block_height,omitempty"`
	PeerCount       *int    `json:"peer_count,omitempty"`
}
