package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/averonne/chainsight/pkg/reputation"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Client talks to a running daemon's dashboard API from the CLI.
type Client struct {
	baseURL string
	c       *http.Client
}

func NewClient() (*Client, error) {
	addr := viper.GetString("daemon_addr")
	if addr == "" {
		addr = fmt.Sprintf("http://127.0.0.1:%d", viper.GetInt("api_port"))
	}

	return &Client{
		baseURL: addr,
		c:       &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (c *Client) Status() (*statusResponse, error) {
	resp := &statusResponse{}
	if err := c.get("/api/status", resp); err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) Chain() (*chainResponse, error) {
	resp := &chainResponse{}
	if err := c.get("/api/chain", resp); err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) Profile() (*reputation.Profile, error) {
	p := &reputation.Profile{}
	if err := c.get("/api/profile", p); err != nil {
		return nil, err
	}

	return p, nil
}

func (c *Client) Register(name string) (*reputation.Profile, error) {
	p := &reputation.Profile{}
	if err := c.do(http.MethodPost, "/api/profile/register", map[string]string{"name": name}, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (c *Client) AwardBadge(b reputation.Badge, delta uint64) (*reputation.Profile, error) {
	p := &reputation.Profile{}

	req := struct {
		Badge reputation.Badge `json:"badge"`
		Delta uint64           `json:"delta"`
	}{Badge: b, Delta: delta}

	if err := c.do(http.MethodPost, "/api/profile/badge", req, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (c *Client) UpdateProfile(patch map[string]interface{}) (*reputation.Profile, error) {
	p := &reputation.Profile{}
	if err := c.do(http.MethodPatch, "/api/profile", patch, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (c *Client) Logout() error {
	return c.do(http.MethodPost, "/api/profile/logout", nil, nil)
}

func (c *Client) Suspend() error {
	return c.do(http.MethodPost, "/api/sync/suspend", nil, nil)
}

func (c *Client) Resume() error {
	return c.do(http.MethodPost, "/api/sync/resume", nil, nil)
}

func (c *Client) get(path string, out interface{}) error {
	return c.do(http.MethodGet, path, nil, out)
}

func (c *Client) do(method, path string, in, out interface{}) error {
	var body io.Reader

	if in != nil {
		d, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "marshaling request")
		}
		body = bytes.NewReader(d)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "building request")
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return errors.Wrap(err, "connecting to daemon")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := struct {
			Error string `json:"error"`
		}{}

		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return errors.New(apiErr.Error)
		}

		return errors.Errorf("daemon returned HTTP %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	return errors.Wrap(json.NewDecoder(resp.Body).Decode(out), "decoding response")
}
