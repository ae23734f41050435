// Package client talks to a running auditstream server over HTTP.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const DefaultHost = "localhost:5000"

// Host resolves the server address from AUDITSTREAM_HOST.
func Host() string {
	if host := strings.TrimSpace(os.Getenv("AUDITSTREAM_HOST")); host != "" {
		return host
	}
	return DefaultHost
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New accepts either host:port or a full URL.
func New(host string) *Client {
	base := strings.TrimRight(strings.TrimSpace(host), "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Get fetches path and returns the body of a 200 response.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s failed with status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// Ping checks the liveness endpoint.
func (c *Client) Ping(ctx context.Context) error {
	body, err := c.Get(ctx, "/ping", nil)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(body)) != "PONG" {
		return fmt.Errorf("unexpected ping response %q", body)
	}
	return nil
}
