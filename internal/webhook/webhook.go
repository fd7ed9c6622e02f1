// Package webhook implements C4, the webhook ingress: it validates an
// inbound delta's shared secret and dispatches the payload to the
// Collection mirror that owns the named entity.
package webhook

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/igdb-mirror/catalog-service/internal/apperr"
)

// Target is the subset of a Mirror[T]'s behavior the ingress needs,
// erased of its entity type so a single registry can hold mirrors for
// every entity class.
type Target interface {
	ApplyUpsert(ctx context.Context, payload []byte) error
	ApplyDelete(ctx context.Context, payload []byte) error
}

// Ingress dispatches inbound upstream deltas to the owning mirror by
// entity name, after validating the shared secret.
type Ingress struct {
	secret  string
	targets map[string]Target
	logger  *slog.Logger
}

// New constructs an Ingress validating against secret. Missing secret at
// construction is not itself fatal — the real fatal case, ConfigMissing
// at webhook-registration time, lives in internal/mirror.ConfigureWebhooks;
// an Ingress with an empty secret simply rejects every event.
func New(secret string, logger *slog.Logger) *Ingress {
	return &Ingress{
		secret:  secret,
		targets: make(map[string]Target),
		logger:  logger,
	}
}

// Register binds entity (the path segment used in
// /igdb/webhooks/{entity}/{method}) to the mirror that owns it.
func (i *Ingress) Register(entity string, target Target) {
	i.targets[entity] = target
}

// Handle validates secret against the configured shared secret, resolves
// entity to its registered mirror, and dispatches: create/update → Add
// (via ApplyUpsert), delete → Delete (via ApplyDelete).
func (i *Ingress) Handle(ctx context.Context, entity, method, secret string, payload []byte) error {
	if i.secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(i.secret)) != 1 {
		return apperr.BadInput("invalid webhook secret")
	}

	target, ok := i.targets[entity]
	if !ok {
		return apperr.NotFoundf("no mirror registered for entity %q", entity)
	}

	switch method {
	case "create", "update":
		if err := target.ApplyUpsert(ctx, payload); err != nil {
			if i.logger != nil {
				i.logger.Error("webhook upsert failed", "entity", entity, "method", method, "error", err)
			}
			return err
		}
	case "delete":
		if err := target.ApplyDelete(ctx, payload); err != nil {
			if i.logger != nil {
				i.logger.Error("webhook delete failed", "entity", entity, "method", method, "error", err)
			}
			return err
		}
	default:
		return apperr.BadInputf("unknown webhook method %q", method)
	}

	return nil
}
