package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/igdb-mirror/catalog-service/internal/apperr"
)

// PageQuery builds the upstream query-language body for one clone page:
// `fields *; limit 500; offset 1000;`.
func PageQuery(limit, offset int) string {
	return fmt.Sprintf("fields *; limit %d; offset %d;", limit, offset)
}

// FetchPage requests one page of endpoint with the given limit/offset and
// returns the raw JSON array body.
func (c *Client) FetchPage(ctx context.Context, endpoint string, limit, offset int) ([]byte, error) {
	return c.SendStringRequest(ctx, endpoint, PageQuery(limit, offset), MethodPost)
}

// countResponse mirrors the upstream count endpoint's raw JSON shape;
// Count decodes the response body into it.
type countResponse struct {
	Count int `json:"count"`
}

// webhookEntry mirrors one element of the JSON list returned by
// `{endpoint}/webhooks`.
type webhookEntry struct {
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// RegisterWebhook POSTs a form `{method, secret, url}` to
// `{endpoint}/webhooks` and reports whether at least one returned entry
// for that url is active. Decoding happens here (rather than purely in
// C3) because the shape is part of the upstream contract C1 documents,
// not catalog domain knowledge.
func (c *Client) RegisterWebhook(ctx context.Context, endpoint, method, secret, callbackURL string) (bool, error) {
	form := url.Values{}
	form.Set("method", method)
	form.Set("secret", secret)
	form.Set("url", callbackURL)

	data, err := c.SendStringRequest(ctx, endpoint+"/webhooks", form.Encode(), MethodPost)
	if err != nil {
		return false, err
	}

	var entries []webhookEntry
	if err := decodeJSON(data, &entries); err != nil {
		return false, apperr.Wrapf(err, apperr.CodeUpstreamFailure, "decode webhook registration response from %q", endpoint)
	}

	for _, e := range entries {
		if e.URL == callbackURL && e.Active {
			return true, nil
		}
	}
	return false, nil
}

// ListWebhooks fetches the upstream's currently registered webhook list
// for endpoint, used by ConfigureWebhooks to decide whether registration
// is already done.
func (c *Client) ListWebhooks(ctx context.Context, endpoint string) ([]string, error) {
	data, err := c.SendStringRequest(ctx, endpoint+"/webhooks", "", MethodGet)
	if err != nil {
		return nil, err
	}

	var entries []webhookEntry
	if err := decodeJSON(data, &entries); err != nil {
		return nil, apperr.Wrapf(err, apperr.CodeUpstreamFailure, "decode webhook list from %q", endpoint)
	}

	urls := make([]string, 0, len(entries))
	for _, e := range entries {
		urls = append(urls, e.URL)
	}
	return urls, nil
}

// Count fetches the upstream's current row count for endpoint via a
// form-encoded POST to `{endpoint}/count`.
func (c *Client) Count(ctx context.Context, endpoint string) (int, error) {
	data, err := c.SendStringRequest(ctx, endpoint+"/count", "fields=*", MethodPost)
	if err != nil {
		return 0, err
	}

	var parsed countResponse
	if err := decodeJSON(data, &parsed); err != nil {
		return 0, apperr.Wrapf(err, apperr.CodeUpstreamFailure, "decode count response from %q", endpoint)
	}
	return parsed.Count, nil
}
