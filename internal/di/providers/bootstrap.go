package providers

import (
	"context"
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/igdb-mirror/catalog-service/internal/domain"
	"github.com/igdb-mirror/catalog-service/internal/logger"
	"github.com/igdb-mirror/catalog-service/internal/mirror"
	"github.com/igdb-mirror/catalog-service/internal/upstream"
)

// syncable is the subset of Mirror[T]'s behavior startup bootstrap needs,
// erased of entity type.
type syncable interface {
	CloneCollection(ctx context.Context) error
	ConfigureWebhooks(ctx context.Context, currentWebhooks []string) error
}

// BootstrapHandle marks that startup cloning/webhook registration has
// been kicked off; it carries no state of its own.
type BootstrapHandle struct{}

// ProvideBootstrap clones every collection from the upstream and
// registers its webhooks in the background (spec.md §4: "on startup,
// each C3 may CloneCollection via C1"). Failures are logged; they do not
// block the HTTP server from serving whatever was already on disk.
func ProvideBootstrap(i do.Injector) (*BootstrapHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	client := do.MustInvoke[*upstream.Client](i)

	mirrors := map[string]syncable{
		"games":              do.MustInvoke[*mirror.Mirror[domain.Game]](i),
		"alternative_names":  do.MustInvoke[*mirror.Mirror[domain.AlternativeName]](i),
		"external_games":     do.MustInvoke[*mirror.Mirror[domain.ExternalGame]](i),
		"companies":          do.MustInvoke[*mirror.Mirror[domain.Company]](i),
		"game_localizations": do.MustInvoke[*mirror.Mirror[domain.GameLocalization]](i),
	}

	for name, m := range mirrors {
		go syncMirror(context.Background(), name, m, client, log.Logger)
	}

	return &BootstrapHandle{}, nil
}

func syncMirror(ctx context.Context, name string, m syncable, client *upstream.Client, log *slog.Logger) {
	log.Info("cloning collection from upstream", "collection", name)
	if err := m.CloneCollection(ctx); err != nil {
		log.Error("clone failed", "collection", name, "error", err)
		return
	}

	webhooks, err := client.ListWebhooks(ctx, "/"+name)
	if err != nil {
		log.Error("failed to list existing webhooks", "collection", name, "error", err)
		return
	}

	if err := m.ConfigureWebhooks(ctx, webhooks); err != nil {
		log.Error("webhook configuration failed", "collection", name, "error", err)
	}
}
