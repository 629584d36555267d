package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/averonne/chainsight/internal/utils/logging"
	"github.com/averonne/chainsight/pkg/chain"
	"github.com/gorilla/websocket"
)

// Message is a typed websocket frame pushed to dashboard subscribers.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans new-block events out to every connected websocket client. A
// client too slow to accept a write is dropped rather than allowed to stall
// the broadcast.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.WithError(err).Error("upgrading to websocket")
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	// drain reads so the peer's close frame is processed
	go func() {
		defer h.drop(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()

	conn.Close()
}

// Pump forwards synchronizer notifications to all subscribers until ctx is
// cancelled. Each height increase produces at most one frame per client.
func (h *Hub) Pump(ctx context.Context, events <-chan chain.BlockEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-events:
			h.Broadcast(Message{Type: "new_block", Data: e.Block})
		}
	}
}

func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(msg); err != nil {
			logging.WithError(err).Debug("dropping slow websocket client")
			h.drop(c)
		}
	}
}
