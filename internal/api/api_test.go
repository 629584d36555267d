package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/averonne/chainsight/pkg/chain"
	"github.com/averonne/chainsight/pkg/health"
	"github.com/averonne/chainsight/pkg/reputation"
	"github.com/averonne/chainsight/pkg/scheduler"
	"github.com/averonne/chainsight/pkg/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatusClient struct{}

func (f *fakeStatusClient) NodeStatus(ctx context.Context, n health.Node) (*health.NodeInfo, error) {
	return &health.NodeInfo{Reachable: true}, nil
}

type fakeChainClient struct {
	snap *chain.Snapshot
}

func (f *fakeChainClient) ChainSnapshot(ctx context.Context) (*chain.Snapshot, error) {
	return f.snap, nil
}

type fakeWalletClient struct{}

func (f *fakeWalletClient) Wallets(ctx context.Context) ([]wallet.Wallet, error) {
	return []wallet.Wallet{{Name: "main", Address: "CSXA", Balance: 10}}, nil
}

func makeSnapshot() *chain.Snapshot {
	s := &chain.Snapshot{}

	prev := "0"
	for i := 0; i < 3; i++ {
		b := chain.Block{
			Index:        uint64(i),
			PreviousHash: prev,
			Validator:    "validator-0",
		}
		b.Hash = b.ComputeHash()
		prev = b.Hash

		s.Blocks = append(s.Blocks, b)
	}

	return s
}

func newTestAPI(t *testing.T) *Api {
	monitor := health.NewMonitor(
		[]health.Node{{URL: "http://a", DisplayName: "Node A"}},
		&fakeStatusClient{},
		time.Second,
	)
	monitor.PollAll(context.Background())

	sync := chain.NewSynchronizer(&fakeChainClient{snap: makeSnapshot()}, nil)
	_, err := sync.Refresh(context.Background())
	require.NoError(t, err)

	runner := scheduler.NewRunner("chain", time.Minute, func(ctx context.Context) error {
		return nil
	})

	engine, err := reputation.NewEngine(context.Background(), reputation.NewMemStore())
	require.NoError(t, err)

	a, err := NewAPI(monitor, sync, runner, engine, &fakeWalletClient{})
	require.NoError(t, err)

	return a
}

func doRequest(t *testing.T, a *Api, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer

	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()

	a.srv.Handler.ServeHTTP(w, req)

	return w
}

func TestHandleStatus(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(t, a, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := statusResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.OnlineCount)
	require.Len(t, resp.Nodes, 1)
	assert.Equal(t, "online", resp.Nodes[0].State)
}

func TestHandleChain(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(t, a, http.MethodGet, "/api/chain", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := chainResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Len(t, resp.Blocks, 3)
	assert.Equal(t, 3, resp.Stats.BlockCount)
	assert.False(t, resp.Suspended)
}

func TestHandleWallets(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(t, a, http.MethodGet, "/api/wallets", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := wallet.Aggregates{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, float64(10), resp.TotalBalance)
}

func TestProfileLifecycle(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(t, a, http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, a, http.MethodPost, "/api/profile/register", map[string]string{"name": "Ada"})
	require.Equal(t, http.StatusOK, w.Code)

	p := reputation.Profile{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, uint64(100), p.Reputation)

	w = doRequest(t, a, http.MethodPost, "/api/profile/register", map[string]string{"name": "Grace"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, a, http.MethodPost, "/api/profile/badge", map[string]interface{}{
		"badge": map[string]string{"id": "b1", "name": "First Steps", "category": "achievement"},
		"delta": 50,
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, uint64(150), p.Reputation)

	w = doRequest(t, a, http.MethodPost, "/api/profile/badge", map[string]interface{}{
		"badge": map[string]string{"id": "b1"},
		"delta": 50,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, a, http.MethodPatch, "/api/profile", map[string]interface{}{"bio": "pioneer"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, a, http.MethodPost, "/api/profile/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, a, http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuspendResume(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(t, a, http.MethodPost, "/api/sync/suspend", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, a.syncRunner.Suspended())

	w = doRequest(t, a, http.MethodGet, "/api/chain", nil)
	resp := chainResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// suspension keeps the last good snapshot visible
	assert.True(t, resp.Suspended)
	assert.Len(t, resp.Blocks, 3)

	w = doRequest(t, a, http.MethodPost, "/api/sync/resume", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, a.syncRunner.Suspended())
}

func TestMethodGuards(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(t, a, http.MethodPost, "/api/status", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = doRequest(t, a, http.MethodGet, "/api/profile/register", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
