// Package upstream implements C1, the single textual-RPC gateway to the
// upstream catalog API: query-language POSTs for cloning, form-encoded
// POSTs for webhook registration. SendStringRequest and FetchPage return
// the raw response body for the caller to decode; RegisterWebhook,
// ListWebhooks and Count decode their JSON responses inside the client.
package upstream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/igdb-mirror/catalog-service/internal/apperr"
	"github.com/igdb-mirror/catalog-service/internal/ratelimit"
)

const (
	defaultTimeout = 30 * time.Second

	// The upstream documents no published rate limit; 4 req/s with a
	// burst of 8 keeps cloning brisk without tripping it.
	defaultRPS   = 4.0
	defaultBurst = 8
)

// Method is the HTTP verb SendStringRequest issues. The upstream's query
// language is POSTed as a text body and webhook registration as a
// form-encoded body, both with MethodPost; ListWebhooks uses MethodGet.
type Method string

const (
	MethodPost Method = http.MethodPost
	MethodGet  Method = http.MethodGet
)

// Client sends textual queries and form posts to the upstream API. Rate
// limiting is keyed by endpoint so cloning one collection never starves
// another's webhook registration calls of burst budget.
type Client struct {
	http        *http.Client
	baseURL     string
	authToken   string
	rateLimiter *ratelimit.KeyedRateLimiter
	logger      *slog.Logger
}

// New creates a client bound to baseURL, authenticating with authToken
// unless the call site overrides auth per-request via SendStringRequest's
// auth parameter.
func New(baseURL, authToken string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		authToken:   authToken,
		rateLimiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:      logger,
	}
}

// Close releases resources held by the client's rate limiter.
func (c *Client) Close() {
	c.rateLimiter.Stop()
}

// SendStringRequest sends body to endpoint (resolved against the
// client's base URL) and returns the raw response bytes. body is either
// the upstream query language (`fields *; limit N; offset M;`) sent as
// text/plain, or a form-encoded string (`method=...&secret=...&url=...`)
// sent as application/x-www-form-urlencoded — both are plain strings at
// this layer; the caller picks the shape. auth, if non-empty, overrides
// the client's configured token for this call.
func (c *Client) SendStringRequest(ctx context.Context, endpoint, body string, method Method, auth ...string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx, endpoint); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstreamFailure, "rate limit wait")
	}

	target, err := url.JoinPath(c.baseURL, endpoint)
	if err != nil {
		return nil, apperr.Wrapf(err, apperr.CodeUpstreamFailure, "build endpoint URL for %q", endpoint)
	}

	req, err := http.NewRequestWithContext(ctx, string(method), target, strings.NewReader(body))
	if err != nil {
		return nil, apperr.Wrapf(err, apperr.CodeUpstreamFailure, "build request for %q", endpoint)
	}

	if isFormEncoded(body) {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req.Header.Set("Content-Type", "text/plain")
	}

	token := c.authToken
	if len(auth) > 0 && auth[0] != "" {
		token = auth[0]
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Wrapf(err, apperr.CodeUpstreamFailure, "request to %q", endpoint)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrapf(err, apperr.CodeUpstreamFailure, "read response from %q", endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.logger != nil {
			c.logger.Error("upstream request failed",
				"endpoint", endpoint,
				"status", resp.StatusCode,
				"body", truncate(data, 256),
			)
		}
		return nil, apperr.UpstreamFailuref("upstream returned status %d for %q", resp.StatusCode, endpoint)
	}

	return data, nil
}

// isFormEncoded is a best-effort sniff used purely to pick a
// Content-Type: form bodies always look like key=value pairs joined by
// '&', the query language never contains '='.
func isFormEncoded(body string) bool {
	return strings.Contains(body, "=") && !strings.Contains(body, ";")
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return fmt.Sprintf("%s...(truncated)", b[:n])
}
