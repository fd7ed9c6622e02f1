package providers

import (
	"github.com/samber/do/v2"

	"github.com/igdb-mirror/catalog-service/internal/config"
	"github.com/igdb-mirror/catalog-service/internal/domain"
	"github.com/igdb-mirror/catalog-service/internal/logger"
	"github.com/igdb-mirror/catalog-service/internal/mirror"
	"github.com/igdb-mirror/catalog-service/internal/webhook"
)

// ProvideWebhookIngress provides the C4 webhook ingress, with every
// mirror registered under the entity name used in its
// /igdb/webhooks/{entity}/{method} route.
func ProvideWebhookIngress(i do.Injector) (*webhook.Ingress, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	ingress := webhook.New(cfg.Webhook.Secret, log.Logger)

	ingress.Register("games", do.MustInvoke[*mirror.Mirror[domain.Game]](i))
	ingress.Register("alternative_names", do.MustInvoke[*mirror.Mirror[domain.AlternativeName]](i))
	ingress.Register("external_games", do.MustInvoke[*mirror.Mirror[domain.ExternalGame]](i))
	ingress.Register("companies", do.MustInvoke[*mirror.Mirror[domain.Company]](i))
	ingress.Register("game_localizations", do.MustInvoke[*mirror.Mirror[domain.GameLocalization]](i))

	return ingress, nil
}
