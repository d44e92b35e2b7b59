// Package contentapi provides the HTTP client for the content store's REST
// surface. It implements thread.ContentAPI against a configured base host.
package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quorum/internal/thread"
)

// Doer abstracts *http.Client for tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the content store at a base host, authenticating each
// request with a bearer token fetched fresh from the token source. Timeouts
// are the HTTP client's responsibility, not imposed here.
type Client struct {
	host   string
	http   Doer
	tokens thread.TokenSource
}

// NewClient creates a content API client for the given base host.
// A nil httpClient falls back to a default with a 30s timeout.
func NewClient(host string, tokens thread.TokenSource, httpClient Doer) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		host:   strings.TrimRight(host, "/"),
		http:   httpClient,
		tokens: tokens,
	}
}

// updateBody is the partial-update envelope the content store expects.
type updateBody struct {
	Data map[string]interface{} `json:"data"`
}

// UpdateReply issues an idempotent partial update of the given fields.
func (c *Client) UpdateReply(ctx context.Context, replyID uint, fields map[string]interface{}) error {
	payload, err := json.Marshal(updateBody{Data: fields})
	if err != nil {
		return fmt.Errorf("marshal update body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/api/replies/%d", c.host, replyID), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(ctx, req)
}

// DeleteReply removes the reply from the content store.
func (c *Client) DeleteReply(ctx context.Context, replyID uint) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/api/replies/%d", c.host, replyID), nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}

	return c.do(ctx, req)
}

func (c *Client) do(ctx context.Context, req *http.Request) error {
	// Tokens may rotate between gestures; fetch fresh per call.
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("fetch auth token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("content API %s %s: status %d: %s",
			req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// StaticTokenSource returns the same token on every call. Useful for tests
// and server-to-server credentials.
type StaticTokenSource string

// Token implements thread.TokenSource.
func (s StaticTokenSource) Token(context.Context) (string, error) {
	return string(s), nil
}
