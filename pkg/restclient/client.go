// Package restclient is the thin JSON-over-HTTPS layer every remote
// gateway adapter sits on. One base URL, one shared http.Client, explicit
// contexts on every call.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Header is an extra request header, e.g. an Idempotency-Key.
type Header struct {
	Key   string
	Value string
}

type Client struct {
	base *url.URL
	http *http.Client
	log  *slog.Logger

	mu    sync.RWMutex
	token string
}

func New(baseURL string, timeout time.Duration, log *slog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("restclient: bad base url %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base: u,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}, nil
}

// SetToken attaches a bearer token to subsequent requests. Empty clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Do issues one request. path must start with "/". body and out may be nil;
// out is decoded from the response with the backend's occasional
// {"data": ...} envelope peeled off.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, headers ...Header) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("restclient: marshal %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, payload)
	if err != nil {
		return fmt.Errorf("restclient: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("restclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("restclient: read %s %s: %w", method, path, err)
	}

	c.log.Debug("request done",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(unwrap(raw), out); err != nil {
		return fmt.Errorf("restclient: decode %s %s: %w", method, path, err)
	}
	return nil
}

// unwrap peels up to two {"data": ...} envelopes; some endpoints nest the
// payload twice.
func unwrap(raw []byte) []byte {
	for i := 0; i < 2; i++ {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return raw
		}
		if len(env.Data) == 0 || string(env.Data) == "null" {
			return raw
		}
		raw = env.Data
	}
	return raw
}

func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = "no response body"
	}
	return msg
}
