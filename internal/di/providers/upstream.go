package providers

import (
	"github.com/samber/do/v2"

	"github.com/igdb-mirror/catalog-service/internal/config"
	"github.com/igdb-mirror/catalog-service/internal/logger"
	"github.com/igdb-mirror/catalog-service/internal/upstream"
)

// ProvideUpstreamClient provides the single textual-RPC client (C1) shared
// by every mirror.
func ProvideUpstreamClient(i do.Injector) (*upstream.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.AuthToken, log.Logger), nil
}
