package apiclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"movie-catalog/pkg/utils"
)

// Doer is the part of *http.Client the repositories need.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client knows where the remote API lives and how to reach it.
type Client struct {
	http    Doer
	baseURL *url.URL

	// retryMaxElapsed bounds Retry; zero disables retries.
	retryMaxElapsed time.Duration
}

// NewClient wraps an existing Doer, mostly for tests.
func NewClient(doer Doer, baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api base url must be absolute: %q", baseURL)
	}
	return &Client{http: doer, baseURL: u}, nil
}

// InitClient builds the pooled HTTP client used against the remote API.
func InitClient(config utils.APIConfig) (*Client, error) {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       5 * time.Minute,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
	}

	client, err := NewClient(&http.Client{Transport: transport, Timeout: timeout}, config.BaseURL)
	if err != nil {
		return nil, err
	}
	return client.WithRetry(config.RetryMaxElapsed), nil
}

// WithRetry enables Retry with an exponential backoff capped at maxElapsed.
func (c *Client) WithRetry(maxElapsed time.Duration) *Client {
	c.retryMaxElapsed = maxElapsed
	return c
}

// URL resolves path segments and query against the base URL.
func (c *Client) URL(query url.Values, segments ...string) string {
	u := c.baseURL.JoinPath(segments...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.http.Do(req)
}

// Ping checks the API answers at all; any HTTP status counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(pingCtx, http.MethodGet, c.URL(nil), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping api failed: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}
