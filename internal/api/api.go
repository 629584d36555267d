package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/averonne/chainsight/internal/utils/logging"
	"github.com/averonne/chainsight/pkg/chain"
	"github.com/averonne/chainsight/pkg/health"
	"github.com/averonne/chainsight/pkg/reputation"
	"github.com/averonne/chainsight/pkg/scheduler"
	"github.com/averonne/chainsight/pkg/wallet"
	"github.com/pkg/errors"
)

// Api is the dashboard surface: the JSON contract consumed by the
// presentation layer plus a websocket stream for new-block events.
type Api struct {
	srv *http.Server

	monitor    *health.Monitor
	sync       *chain.Synchronizer
	syncRunner *scheduler.Runner
	engine     *reputation.Engine
	wallets    wallet.Client

	hub *Hub
}

func NewAPI(monitor *health.Monitor, sync *chain.Synchronizer, syncRunner *scheduler.Runner, engine *reputation.Engine, wallets wallet.Client) (*Api, error) {
	a := &Api{
		monitor:    monitor,
		sync:       sync,
		syncRunner: syncRunner,
		engine:     engine,
		wallets:    wallets,
		hub:        NewHub(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", a.handleStatus)
	mux.HandleFunc("/api/chain", a.handleChain)
	mux.HandleFunc("/api/wallets", a.handleWallets)
	mux.HandleFunc("/api/profile", a.handleProfile)
	mux.HandleFunc("/api/profile/register", a.handleRegister)
	mux.HandleFunc("/api/profile/badge", a.handleBadge)
	mux.HandleFunc("/api/profile/logout", a.handleLogout)
	mux.HandleFunc("/api/sync/suspend", a.handleSuspend)
	mux.HandleFunc("/api/sync/resume", a.handleResume)
	mux.HandleFunc("/ws", a.hub.HandleWebSocket)

	a.srv = &http.Server{Handler: mux}

	return a, nil
}

// ListenAndServe starts the HTTP listener and the websocket event pump. The
// pump stops when ctx is cancelled.
func (a *Api) ListenAndServe(ctx context.Context, l net.Addr) error {
	lis, err := net.Listen("tcp", l.String())
	if err != nil {
		return err
	}

	go a.hub.Pump(ctx, a.sync.Notifications())

	return a.srv.Serve(lis)
}

func (a *Api) Shutdown(ctx context.Context) error {
	return a.srv.Shutdown(ctx)
}

type statusEntry struct {
	Name            string  `json:"name"`
	URL             string  `json:"url"`
	State           string  `json:"state"`
	LastBlockHeight *uint64 `json:"last_block_height,omitempty"`
	PeerCount       *int    `json:"peer_count,omitempty"`
	ObservedAt      int64   `json:"observed_at"`
}

type statusResponse struct {
	Nodes       []statusEntry `json:"nodes"`
	OnlineCount int           `json:"online_count"`
}

func (a *Api) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	resp := statusResponse{
		Nodes:       []statusEntry{},
		OnlineCount: a.monitor.OnlineCount(),
	}

	statuses := a.monitor.Statuses()
	for _, n := range a.monitor.Nodes() {
		s, ok := statuses[n.URL]
		if !ok {
			continue
		}

		resp.Nodes = append(resp.Nodes, statusEntry{
			Name:            n.DisplayName,
			URL:             n.URL,
			State:           s.State.String(),
			LastBlockHeight: s.LastBlockHeight,
			PeerCount:       s.PeerCount,
			ObservedAt:      s.ObservedAt.Unix(),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

type txEntry struct {
	chain.Transaction
	Status     string  `json:"status"`
	BlockIndex *uint64 `json:"block_index,omitempty"`
}

type chainResponse struct {
	Blocks       []chain.Block `json:"blocks"`
	Transactions []txEntry     `json:"transactions"`
	Stats        chain.Stats   `json:"stats"`
	Suspended    bool          `json:"suspended"`
}

func (a *Api) handleChain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	resp := chainResponse{
		Blocks:       []chain.Block{},
		Transactions: []txEntry{},
		Stats:        a.sync.Stats(),
		Suspended:    a.syncRunner.Suspended(),
	}

	if snap := a.sync.Snapshot(); snap != nil {
		resp.Blocks = snap.Blocks
	}

	for _, tx := range a.sync.Transactions() {
		resp.Transactions = append(resp.Transactions, txEntry{
			Transaction: tx,
			Status:      tx.Status.String(),
			BlockIndex:  tx.BlockIndex,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (a *Api) handleWallets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ws, err := a.wallets.Wallets(ctx)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, wallet.Aggregate(ws))
}

func (a *Api) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		p, err := a.engine.Profile()
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}

		writeJSON(w, http.StatusOK, p)
	case http.MethodPatch:
		req := struct {
			Name        *string  `json:"name"`
			Bio         *string  `json:"bio"`
			Email       *string  `json:"email"`
			StakeAmount *float64 `json:"stake_amount"`
		}{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		p, err := a.engine.UpdateProfile(r.Context(), reputation.ProfilePatch{
			Name:        req.Name,
			Bio:         req.Bio,
			Email:       req.Email,
			StakeAmount: req.StakeAmount,
		})
		a.writeProfileResult(w, p, err)
	default:
		methodNotAllowed(w)
	}
}

func (a *Api) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	req := struct {
		Name string `json:"name"`
	}{}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	p, err := a.engine.Register(r.Context(), req.Name)
	a.writeProfileResult(w, p, err)
}

func (a *Api) handleBadge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	req := struct {
		Badge reputation.Badge `json:"badge"`
		Delta uint64           `json:"delta"`
	}{}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Badge.ID == "" {
		writeError(w, http.StatusBadRequest, errors.New("badge id is required"))
		return
	}

	p, err := a.engine.AwardBadge(r.Context(), req.Badge, req.Delta)
	a.writeProfileResult(w, p, err)
}

func (a *Api) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if err := a.engine.Logout(r.Context()); err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *Api) handleSuspend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	a.syncRunner.Suspend()
	logging.Entry().Info("chain synchronizer suspended")

	writeJSON(w, http.StatusOK, map[string]bool{"suspended": true})
}

func (a *Api) handleResume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	a.syncRunner.Resume()
	logging.Entry().Info("chain synchronizer resumed")

	writeJSON(w, http.StatusOK, map[string]bool{"suspended": false})
}

// writeProfileResult maps a transition outcome. ErrPersistence means the
// transition committed in memory but is not yet durable, reported as 202.
func (a *Api) writeProfileResult(w http.ResponseWriter, p *reputation.Profile, err error) {
	if err != nil {
		if errors.Is(err, reputation.ErrPersistence) && p != nil {
			writeJSON(w, http.StatusAccepted, p)
			return
		}

		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, reputation.ErrAlreadyRegistered), errors.Is(err, reputation.ErrDuplicateBadge):
		return http.StatusConflict
	case errors.Is(err, reputation.ErrNotRegistered):
		return http.StatusNotFound
	case errors.Is(err, reputation.ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.WithError(err).Error("encoding response")
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}
