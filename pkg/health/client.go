package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// StatusClient queries a single node's status endpoint.
type StatusClient interface {
	NodeStatus(ctx context.Context, n Node) (*NodeInfo, error)
}

var _ StatusClient = (*HTTPStatusClient)(nil)

type HTTPStatusClient struct {
	c       *http.Client
	limiter *rate.Limiter
}

func NewHTTPStatusClient(timeout time.Duration, rps int) *HTTPStatusClient {
	if rps <= 0 {
		rps = 10
	}

	return &HTTPStatusClient{
		c:       &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (h *HTTPStatusClient) NodeStatus(ctx context.Context, n Node) (*NodeInfo, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "awaiting rate limit")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.URL+"/ping", nil)
	if err != nil {
		return nil, errors.Wrap(err, "building status request")
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrUnreachable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrUnreachable, "HTTP %d", resp.StatusCode)
	}

	info := &NodeInfo{}
	if err := json.NewDecoder(resp.Body).Decode(info); err != nil {
		return nil, errors.Wrap(err, "decoding status payload")
	}

	return info, nil
}
