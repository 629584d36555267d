package health

import (
	"context"
	"sync"
	"time"

	"github.com/averonne/chainsight/internal/utils/logging"
)

// Monitor polls every registered node concurrently and classifies liveness.
// A slow or failed node never blocks the rest of the batch; each node's
// status is independent and a failed probe simply resolves to StateError.
type Monitor struct {
	nodes   []Node
	client  StatusClient
	timeout time.Duration

	mu   sync.RWMutex
	last map[string]Status
}

func NewMonitor(nodes []Node, client StatusClient, timeout time.Duration) *Monitor {
	return &Monitor{
		nodes:   nodes,
		client:  client,
		timeout: timeout,
		last:    make(map[string]Status),
	}
}

func (m *Monitor) Nodes() []Node {
	return m.nodes
}

// PollAll issues one status request per node concurrently, each with an
// independent timeout. No retries within a cycle; transient failures resolve
// at the next cycle.
func (m *Monitor) PollAll(ctx context.Context) map[string]Status {
	statuses := make(map[string]Status, len(m.nodes))

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, n := range m.nodes {
		wg.Add(1)
		go func(n Node) {
			defer wg.Done()

			s := m.poll(ctx, n)

			mu.Lock()
			statuses[n.URL] = s
			mu.Unlock()
		}(n)
	}
	wg.Wait()

	m.mu.Lock()
	m.last = statuses
	m.mu.Unlock()

	return statuses
}

func (m *Monitor) poll(ctx context.Context, n Node) Status {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	s := Status{Node: n, ObservedAt: time.Now()}

	info, err := m.client.NodeStatus(ctx, n)
	if err != nil {
		logging.WithError(err).WithField("node", n.URL).Debug("node probe failed")
		s.State = StateError
		return s
	}

	if !info.Reachable {
		s.State = StateOffline
		return s
	}

	s.State = StateOnline
	s.LastBlockHeight = info.LastBlockHeight
	s.PeerCount = info.PeerCount

	return s
}

// Statuses returns the result of the most recent poll. The map is replaced
// wholesale each cycle so callers never observe a partial update.
func (m *Monitor) Statuses() map[string]Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.last
}

// OnlineCount reports how many nodes were classified online in the most
// recent poll, for the dashboard summary.
func (m *Monitor) OnlineCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, s := range m.last {
		if s.State == StateOnline {
			count++
		}
	}

	return count
}
