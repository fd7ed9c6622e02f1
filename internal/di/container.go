// Package di provides dependency injection configuration for the catalog
// mirror service.
package di

import (
	"github.com/samber/do/v2"

	"github.com/igdb-mirror/catalog-service/internal/config"
	"github.com/igdb-mirror/catalog-service/internal/di/providers"
	"github.com/igdb-mirror/catalog-service/internal/logger"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Storage layer (C2, C1)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideUpstreamClient)

	// Collections (C2)
	do.Provide(injector, providers.ProvideGameCollection)
	do.Provide(injector, providers.ProvideAlternativeNameCollection)
	do.Provide(injector, providers.ProvideExternalGameCollection)
	do.Provide(injector, providers.ProvideCompanyCollection)
	do.Provide(injector, providers.ProvideGameLocalizationCollection)

	// Mirrors (C3)
	do.Provide(injector, providers.ProvideGameMirror)
	do.Provide(injector, providers.ProvideAlternativeNameMirror)
	do.Provide(injector, providers.ProvideExternalGameMirror)
	do.Provide(injector, providers.ProvideCompanyMirror)
	do.Provide(injector, providers.ProvideGameLocalizationMirror)

	// Webhook ingress (C4)
	do.Provide(injector, providers.ProvideWebhookIngress)

	// Matching and query (C5, C6)
	do.Provide(injector, providers.ProvideMatcher)
	do.Provide(injector, providers.ProvideQueryFacade)

	// Startup clone + webhook registration
	do.Provide(injector, providers.ProvideBootstrap)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of every provider in
// dependency order.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	_ = do.MustInvoke[*providers.BootstrapHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
