// Package mirror implements C3, the collection-mirror contract: one
// Mirror per upstream entity class (Game, AlternativeName, ExternalGame,
// Company, GameLocalization), each wrapping a store.Collection and an
// upstream.Client to provide point/bulk lookup, bulk upsert, delete,
// full re-clone, and webhook registration.
package mirror

import (
	"context"
	"encoding/json/v2"
	"log/slog"

	"github.com/igdb-mirror/catalog-service/internal/apperr"
	"github.com/igdb-mirror/catalog-service/internal/store"
	"github.com/igdb-mirror/catalog-service/internal/upstream"
)

// pageSize is the fixed block size for CloneCollection's paging loop (§4.3).
const pageSize = 500

// progressInterval is how often CloneCollection logs its progress (§4.3:
// "Progress is reported every 5,000 items").
const progressInterval = 5000

// Mirror is the generic per-entity-class collection mirror. Endpoint is
// the upstream's path for this entity class (e.g. "/games"), also used
// to derive webhook callback URLs.
type Mirror[T store.Identifiable] struct {
	collection *store.Collection[T]
	client     *upstream.Client
	endpoint   string
	webhook    WebhookConfig
	logger     *slog.Logger
}

// WebhookConfig carries the two values ConfigureWebhooks requires;
// missing either is a fatal apperr.ConfigMissing when ConfigureWebhooks
// is actually invoked, never at construction time (§6: "Missing webhook
// configuration is fatal only when ConfigureWebhooks is invoked").
type WebhookConfig struct {
	RootAddress string
	Secret      string
}

// New constructs a Mirror bound to endpoint, backed by collection and
// client.
func New[T store.Identifiable](collection *store.Collection[T], client *upstream.Client, endpoint string, webhook WebhookConfig, logger *slog.Logger) *Mirror[T] {
	return &Mirror[T]{
		collection: collection,
		client:     client,
		endpoint:   endpoint,
		webhook:    webhook,
		logger:     logger,
	}
}

// GetItem delegates to the underlying collection. id == 0 yields (nil, nil).
func (m *Mirror[T]) GetItem(ctx context.Context, id uint64) (*T, error) {
	return m.collection.GetItem(ctx, id)
}

// GetItems delegates to the underlying collection. An empty ids slice
// yields (nil, nil).
func (m *Mirror[T]) GetItems(ctx context.Context, ids []uint64) ([]*T, error) {
	return m.collection.GetItems(ctx, ids)
}

// Add bulk-upserts items by id.
func (m *Mirror[T]) Add(ctx context.Context, items []*T) error {
	return m.collection.Add(ctx, items)
}

// Delete removes a single item by id.
func (m *Mirror[T]) Delete(ctx context.Context, id uint64) error {
	return m.collection.Delete(ctx, id)
}

// ApplyUpsert decodes a single webhook payload (the upstream's raw JSON
// object for one entity) and upserts it. Used by C4 for create/update
// events, which it dispatches generically across entity types via the
// Target interface.
func (m *Mirror[T]) ApplyUpsert(ctx context.Context, payload []byte) error {
	var item T
	if err := json.Unmarshal(payload, &item); err != nil {
		return apperr.Wrapf(err, apperr.CodeUpstreamFailure, "decode webhook payload for %s", m.endpoint)
	}
	return m.collection.Add(ctx, []*T{&item})
}

// ApplyDelete decodes a single webhook payload far enough to recover its
// id, then deletes that id. Used by C4 for delete events.
func (m *Mirror[T]) ApplyDelete(ctx context.Context, payload []byte) error {
	var item T
	if err := json.Unmarshal(payload, &item); err != nil {
		return apperr.Wrapf(err, apperr.CodeUpstreamFailure, "decode webhook payload for %s", m.endpoint)
	}
	return m.collection.Delete(ctx, any(item).(store.Identifiable).GetID())
}

// Collection exposes the underlying store.Collection for components that
// need direct text-search or composite-index access (the matcher, the
// external-store shortcut).
func (m *Mirror[T]) Collection() *store.Collection[T] {
	return m.collection
}

// CloneCollection drops the collection, recreates its indexes, then pages
// the upstream in fixed blocks of pageSize, appending each page via Add,
// until a page returns fewer than pageSize records. Failure during a page
// aborts the clone, leaving the collection partially loaded; the next
// clone drops and retries (§4.3).
func (m *Mirror[T]) CloneCollection(ctx context.Context) error {
	if err := m.collection.DropCollection(ctx); err != nil {
		return apperr.Wrap(err, apperr.CodeUpstreamFailure, "drop collection before clone")
	}

	total := 0
	for offset := 0; ; offset += pageSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := m.client.FetchPage(ctx, m.endpoint, pageSize, offset)
		if err != nil {
			return apperr.Wrap(err, apperr.CodeUpstreamFailure, "fetch clone page")
		}

		var page []*T
		if err := json.Unmarshal(data, &page); err != nil {
			return apperr.Wrapf(err, apperr.CodeUpstreamFailure, "decode clone page at offset %d", offset)
		}

		if len(page) > 0 {
			if err := m.collection.Add(ctx, page); err != nil {
				return apperr.Wrap(err, apperr.CodeUpstreamFailure, "apply clone page")
			}
		}

		total += len(page)
		if total/progressInterval != (total-len(page))/progressInterval && m.logger != nil {
			m.logger.Info("clone progress", "endpoint", m.endpoint, "items", total)
		}

		if len(page) < pageSize {
			break
		}
	}

	m.collection.BumpGeneration()
	if m.logger != nil {
		m.logger.Info("clone complete", "endpoint", m.endpoint, "items", total)
	}
	return nil
}

// ConfigureWebhooks registers the {create, update, delete} hooks for this
// mirror's endpoint if not already present, per §4.3's registration
// algorithm. Missing RootAddress or Secret is a fatal ConfigMissing.
func (m *Mirror[T]) ConfigureWebhooks(ctx context.Context, currentWebhooks []string) error {
	if m.webhook.RootAddress == "" || m.webhook.Secret == "" {
		return apperr.ConfigMissing("webhook root address and secret are required to configure webhooks")
	}

	existing := make(map[string]bool, len(currentWebhooks))
	for _, url := range currentWebhooks {
		existing[url] = true
	}

	for _, method := range []string{"create", "update", "delete"} {
		callbackURL := m.webhook.RootAddress + m.endpoint + "/" + method
		if existing[callbackURL] {
			continue
		}

		active, err := m.client.RegisterWebhook(ctx, m.endpoint, method, m.webhook.Secret, callbackURL)
		if err != nil {
			return apperr.Wrap(err, apperr.CodeUpstreamFailure, "register webhook")
		}
		if !active {
			return apperr.UpstreamFailuref("upstream did not report an active webhook for %s %s", m.endpoint, method)
		}
		if m.logger != nil {
			m.logger.Info("webhook registered", "endpoint", m.endpoint, "method", method)
		}
	}
	return nil
}
