package providers

import (
	"strconv"

	"github.com/samber/do/v2"

	"github.com/igdb-mirror/catalog-service/internal/domain"
	"github.com/igdb-mirror/catalog-service/internal/query"
	"github.com/igdb-mirror/catalog-service/internal/store"
)

// ProvideGameCollection provides the Game collection: id-indexed with a
// text index over Name for free-text search (§4.2, §4.5).
func ProvideGameCollection(i do.Injector) (*store.Collection[domain.Game], error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return store.NewCollection(storeHandle.Store, "games", store.IndexSpec[domain.Game]{
		TextValue: func(g *domain.Game) string { return g.Name },
	})
}

// ProvideAlternativeNameCollection provides the AlternativeName
// collection, id-indexed with a text index over Name (searched by the
// matcher, §4.5.3) and an ascending index over GameID. The matcher expands
// a hit to its owning Game by id through the Game collection, not through
// the GameID index.
func ProvideAlternativeNameCollection(i do.Injector) (*store.Collection[domain.AlternativeName], error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return store.NewCollection(storeHandle.Store, "alternative_names", store.IndexSpec[domain.AlternativeName]{
		TextValue: func(a *domain.AlternativeName) string { return a.Name },
		Ascending: []store.AscendingIndex[domain.AlternativeName]{
			{Name: "game_id", Value: func(a *domain.AlternativeName) string { return strconv.FormatUint(a.GameID, 10) }},
		},
	})
}

// ProvideExternalGameCollection provides the ExternalGame collection,
// id-indexed with a composite (UID, Category) index used by the
// external-store shortcut (§4.5.4). The composite key builder is shared
// with internal/query so both sides of the index agree on its format.
func ProvideExternalGameCollection(i do.Injector) (*store.Collection[domain.ExternalGame], error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return store.NewCollection(storeHandle.Store, "external_games", store.IndexSpec[domain.ExternalGame]{
		Composite: &store.CompositeIndex[domain.ExternalGame]{
			Name: "uid_category",
			Value: func(e *domain.ExternalGame) string {
				return query.ExternalGameCompositeKey(e.UID, e.Category)
			},
		},
	})
}

// ProvideCompanyCollection provides the Company collection: an
// id-indexed-only passthrough entity class with no secondary indexes
// (domain.Company's own doc comment).
func ProvideCompanyCollection(i do.Injector) (*store.Collection[domain.Company], error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return store.NewCollection(storeHandle.Store, "companies", store.IndexSpec[domain.Company]{})
}

// ProvideGameLocalizationCollection provides the GameLocalization
// collection, id-indexed with a text index over Name. The matcher does not
// search this collection; only games and alternative names are searched.
func ProvideGameLocalizationCollection(i do.Injector) (*store.Collection[domain.GameLocalization], error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	return store.NewCollection(storeHandle.Store, "game_localizations", store.IndexSpec[domain.GameLocalization]{
		TextValue: func(l *domain.GameLocalization) string { return l.Name },
	})
}
