// Package scryfall provides a rate-limited client for the Scryfall card API.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.scryfall.com"
	rateLimitDelay = 100 * time.Millisecond // 10 req/sec, per Scryfall guidance
	requestTimeout = 20 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
)

// Client represents a Scryfall API client with rate limiting and retries.
type Client struct {
	// BaseURL overrides the API root, primarily for tests.
	BaseURL string

	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
}

// NewClient creates a new Scryfall API client.
func NewClient() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   "deck-labeler/1.0",
	}
}

// GetCardByName retrieves a card by its exact name.
func (c *Client) GetCardByName(ctx context.Context, name string) (*Card, error) {
	endpoint := fmt.Sprintf("%s/cards/named?exact=%s", c.BaseURL, url.QueryEscape(name))

	var card Card
	if err := c.doRequest(ctx, endpoint, &card); err != nil {
		if _, ok := err.(*notFound); ok {
			return nil, &NotFoundError{Name: name}
		}
		return nil, fmt.Errorf("get card %q: %w", name, err)
	}
	return &card, nil
}

// notFound is an internal marker translated into NotFoundError by callers
// that know which resource was requested.
type notFound struct{ url string }

func (e *notFound) Error() string { return "not found: " + e.url }

// doRequest performs an HTTP GET with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			if attempt < maxRetries {
				if !sleepCtx(ctx, backoff) {
					return ctx.Err()
				}
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		err = c.handleResponse(resp, result)
		_ = resp.Body.Close()

		if retryable, ok := err.(*retryableError); ok {
			lastErr = retryable.err
			if attempt < maxRetries {
				delay := backoff
				if retryable.retryAfter > 0 {
					delay = retryable.retryAfter
				}
				if !sleepCtx(ctx, delay) {
					return ctx.Err()
				}
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}
		return err
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// retryableError wraps a server-side failure worth retrying.
type retryableError struct {
	err        error
	retryAfter time.Duration
}

func (e *retryableError) Error() string { return e.err.Error() }

func (c *Client) handleResponse(resp *http.Response, result interface{}) error {
	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response body: %w", err)
		}
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("parse JSON response: %w", err)
		}
		return nil

	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		re := &retryableError{err: fmt.Errorf("server error (HTTP %d)", resp.StatusCode)}
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if d, err := time.ParseDuration(ra + "s"); err == nil {
				re.retryAfter = d
			}
		}
		return re

	case http.StatusNotFound:
		return &notFound{url: resp.Request.URL.String()}

	default:
		body, _ := io.ReadAll(resp.Body)
		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Details != "" {
			return &apiErr
		}
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
