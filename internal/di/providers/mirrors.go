package providers

import (
	"github.com/samber/do/v2"

	"github.com/igdb-mirror/catalog-service/internal/config"
	"github.com/igdb-mirror/catalog-service/internal/domain"
	"github.com/igdb-mirror/catalog-service/internal/logger"
	"github.com/igdb-mirror/catalog-service/internal/mirror"
	"github.com/igdb-mirror/catalog-service/internal/store"
	"github.com/igdb-mirror/catalog-service/internal/upstream"
)

func webhookConfig(cfg *config.Config) mirror.WebhookConfig {
	return mirror.WebhookConfig{RootAddress: cfg.Webhook.RootAddress, Secret: cfg.Webhook.Secret}
}

// ProvideGameMirror provides the Game mirror (C3), bound to the upstream
// "/games" endpoint.
func ProvideGameMirror(i do.Injector) (*mirror.Mirror[domain.Game], error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	client := do.MustInvoke[*upstream.Client](i)
	collection := do.MustInvoke[*store.Collection[domain.Game]](i)

	return mirror.New(collection, client, "/games", webhookConfig(cfg), log.Logger), nil
}

// ProvideAlternativeNameMirror provides the AlternativeName mirror, bound
// to the upstream "/alternative_names" endpoint.
func ProvideAlternativeNameMirror(i do.Injector) (*mirror.Mirror[domain.AlternativeName], error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	client := do.MustInvoke[*upstream.Client](i)
	collection := do.MustInvoke[*store.Collection[domain.AlternativeName]](i)

	return mirror.New(collection, client, "/alternative_names", webhookConfig(cfg), log.Logger), nil
}

// ProvideExternalGameMirror provides the ExternalGame mirror, bound to
// the upstream "/external_games" endpoint.
func ProvideExternalGameMirror(i do.Injector) (*mirror.Mirror[domain.ExternalGame], error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	client := do.MustInvoke[*upstream.Client](i)
	collection := do.MustInvoke[*store.Collection[domain.ExternalGame]](i)

	return mirror.New(collection, client, "/external_games", webhookConfig(cfg), log.Logger), nil
}

// ProvideCompanyMirror provides the Company mirror, bound to the
// upstream "/companies" endpoint.
func ProvideCompanyMirror(i do.Injector) (*mirror.Mirror[domain.Company], error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	client := do.MustInvoke[*upstream.Client](i)
	collection := do.MustInvoke[*store.Collection[domain.Company]](i)

	return mirror.New(collection, client, "/companies", webhookConfig(cfg), log.Logger), nil
}

// ProvideGameLocalizationMirror provides the GameLocalization mirror,
// bound to the upstream "/game_localizations" endpoint.
func ProvideGameLocalizationMirror(i do.Injector) (*mirror.Mirror[domain.GameLocalization], error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	client := do.MustInvoke[*upstream.Client](i)
	collection := do.MustInvoke[*store.Collection[domain.GameLocalization]](i)

	return mirror.New(collection, client, "/game_localizations", webhookConfig(cfg), log.Logger), nil
}
