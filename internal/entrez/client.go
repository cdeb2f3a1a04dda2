// Package entrez is a small client for the NCBI E-utilities endpoints used
// in the workshop lessons: esearch, efetch, elink, esummary and einfo.
package entrez

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"
)

// DefaultBaseURL is the public E-utilities endpoint.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const maxAttempts = 3

// Client talks to the E-utilities. The zero value is not usable; call New.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Tool and Email identify the caller to NCBI, as their usage policy
	// asks. APIKey raises the allowed request rate.
	Tool   string
	Email  string
	APIKey string

	cache *Cache

	mu   sync.Mutex
	last time.Time
	gap  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint; tests point this at a local server.
func WithBaseURL(u string) Option { return func(c *Client) { c.BaseURL = u } }

// WithAPIKey sets the api key sent with every request.
func WithAPIKey(k string) Option { return func(c *Client) { c.APIKey = k } }

// WithCache attaches a response cache for efetch results.
func WithCache(cache *Cache) Option { return func(c *Client) { c.cache = cache } }

// WithQPS caps the request rate at qps requests per second.
func WithQPS(qps int) Option {
	return func(c *Client) {
		if qps > 0 {
			c.gap = time.Second / time.Duration(qps)
		}
	}
}

// WithIdentity sets the tool and email reported to NCBI.
func WithIdentity(tool, email string) Option {
	return func(c *Client) {
		c.Tool = tool
		c.Email = email
	}
}

// New builds a Client. The NCBI_API_KEY environment variable is picked up
// when no key is set explicitly.
func New(opts ...Option) *Client {
	c := &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Tool:       "bioworkshop",
		gap:        time.Second / 3, // NCBI allows 3 req/s without a key
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("NCBI_API_KEY")
	}
	return c
}

// throttle spaces requests at least c.gap apart.
func (c *Client) throttle(ctx context.Context) error {
	c.mu.Lock()
	wait := c.gap - time.Since(c.last)
	c.last = time.Now().Add(wait)
	c.mu.Unlock()
	if wait <= 0 {
		return nil
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// get performs a rate-limited GET against the named eutil, retrying on 429
// and honoring the Retry-After header.
func (c *Client) get(ctx context.Context, util string, params url.Values) ([]byte, error) {
	if c.APIKey != "" {
		params.Set("api_key", c.APIKey)
	}
	if c.Tool != "" {
		params.Set("tool", c.Tool)
	}
	if c.Email != "" {
		params.Set("email", c.Email)
	}
	reqURL := c.BaseURL + "/" + util + "?" + params.Encode()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.throttle(ctx); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = err
			sleepCtx(ctx, time.Duration(attempt*300)*time.Millisecond)
			continue
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return nil, readErr
			}
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("%s returned 429", util)
			sleepCtx(ctx, retryAfter(resp, attempt))
		default:
			return nil, fmt.Errorf("%s returned status %d: %s", util, resp.StatusCode, string(body))
		}
	}
	return nil, fmt.Errorf("%s failed after %d attempts: %w", util, maxAttempts, lastErr)
}

// retryAfter reads the Retry-After header, falling back to linear backoff.
func retryAfter(resp *http.Response, attempt int) time.Duration {
	if s := resp.Header.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(attempt*500) * time.Millisecond
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
