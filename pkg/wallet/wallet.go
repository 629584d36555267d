package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Wallet is external collaborator state, read-only to this core.
type Wallet struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
}

// Aggregates are the only wallet figures the dashboard consumes.
type Aggregates struct {
	Count        int     `json:"count"`
	TotalBalance float64 `json:"total_balance"`
}

func Aggregate(ws []Wallet) Aggregates {
	a := Aggregates{Count: len(ws)}
	for _, w := range ws {
		a.TotalBalance += w.Balance
	}

	return a
}

type Client interface {
	Wallets(ctx context.Context) ([]Wallet, error)
}

var _ Client = (*HTTPClient)(nil)

type HTTPClient struct {
	baseURL string
	c       *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		c:       &http.Client{Timeout: timeout},
	}
}

func (h *HTTPClient) Wallets(ctx context.Context) ([]Wallet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/api/wallets", nil)
	if err != nil {
		return nil, errors.Wrap(err, "building wallets request")
	}

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching wallets")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("wallets endpoint returned HTTP %d", resp.StatusCode)
	}

	payload := struct {
		Wallets []Wallet `json:"wallets"`
	}{}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding wallets payload")
	}

	return payload.Wallets, nil
}
