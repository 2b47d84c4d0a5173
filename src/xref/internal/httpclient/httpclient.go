// Package httpclient performs JSON requests against HTTP APIs with bounded retries.
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	_maxBodySize    = 32 << 20
	_maxRetries     = 2
	_baseDelay      = 200 * time.Millisecond
	_maxDelay       = 2 * time.Second
	_requestTimeout = 30 * time.Second
)

// StatusError is returned for responses with a 4xx or 5xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error is an implementation of the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client sends requests, retrying network failures and 5xx responses with exponential backoff.
type Client struct {
	http      *http.Client
	userAgent string
	retries   int
	baseDelay time.Duration
}

// New returns a Client that identifies itself with userAgent.
func New(userAgent string) *Client {
	return &Client{
		http:      &http.Client{Timeout: _requestTimeout},
		userAgent: userAgent,
		retries:   _maxRetries,
		baseDelay: _baseDelay,
	}
}

// Do sends the request and returns the response body of a successful response.
// A nil body sends no payload.
func (c *Client) Do(ctx context.Context, method string, url string, body []byte, header http.Header) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			delay := min(c.baseDelay*time.Duration(1<<uint(attempt-1)), _maxDelay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		data, retry, err := c.do(ctx, method, url, body, header)
		if err == nil {
			return data, nil
		}
		if !retry {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("request failed after %d retries: %w", c.retries, lastErr)
}

// DoOnce sends the request a single time. Use it for requests that are not safe to repeat.
func (c *Client) DoOnce(ctx context.Context, method string, url string, body []byte, header http.Header) ([]byte, error) {
	data, _, err := c.do(ctx, method, url, body, header)
	return data, err
}

func (c *Client) do(ctx context.Context, method string, url string, body []byte, header http.Header) (_ []byte, retry bool, _ error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, _maxBodySize))
	if err != nil {
		return nil, true, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, resp.StatusCode >= 500, &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}
	return data, false, nil
}
