package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Client fetches the full chain snapshot from the current node in a single
// request, so blocks and the pending pool always come from the same state.
type Client interface {
	ChainSnapshot(ctx context.Context) (*Snapshot, error)
}

type chainPayload struct {
	CurrentNode struct {
		Blocks              []Block       `json:"blocks"`
		PendingTransactions []Transaction `json:"pending_transactions"`
	} `json:"current_node"`
}

var _ Client = (*HTTPClient)(nil)

type HTTPClient struct {
	nodeURL string
	c       *http.Client
	limiter *rate.Limiter
}

func NewHTTPClient(nodeURL string, timeout time.Duration, rps int) *HTTPClient {
	if rps <= 0 {
		rps = 10
	}

	return &HTTPClient{
		nodeURL: nodeURL,
		c:       &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (h *HTTPClient) ChainSnapshot(ctx context.Context) (*Snapshot, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "awaiting rate limit")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.nodeURL+"/api/chain", nil)
	if err != nil {
		return nil, errors.Wrap(err, "building chain request")
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrFetch, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrFetch, "HTTP %d", resp.StatusCode)
	}

	payload := &chainPayload{}
	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		return nil, errors.Wrap(ErrFetch, err.Error())
	}

	return &Snapshot{
		Blocks:      payload.CurrentNode.Blocks,
		PendingPool: payload.CurrentNode.PendingTransactions,
	}, nil
}
