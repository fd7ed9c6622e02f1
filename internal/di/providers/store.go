package providers

import (
	"github.com/samber/do/v2"

	"github.com/igdb-mirror/catalog-service/internal/config"
	"github.com/igdb-mirror/catalog-service/internal/logger"
	"github.com/igdb-mirror/catalog-service/internal/store"
)

// StoreHandle wraps the document store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the Badger+Bleve document store backing every
// collection (C2).
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := store.New(cfg.Store.DataPath, log.Logger)
	if err != nil {
		return nil, err
	}

	return &StoreHandle{Store: db}, nil
}
