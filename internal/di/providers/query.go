package providers

import (
	"github.com/samber/do/v2"

	"github.com/igdb-mirror/catalog-service/internal/domain"
	"github.com/igdb-mirror/catalog-service/internal/matcher"
	"github.com/igdb-mirror/catalog-service/internal/mirror"
	"github.com/igdb-mirror/catalog-service/internal/query"
)

// ProvideMatcher provides the C5 matcher over the Game and
// AlternativeName mirrors.
func ProvideMatcher(i do.Injector) (*matcher.Matcher, error) {
	games := do.MustInvoke[*mirror.Mirror[domain.Game]](i)
	altNames := do.MustInvoke[*mirror.Mirror[domain.AlternativeName]](i)
	return matcher.New(games, altNames), nil
}

// ProvideQueryFacade provides the C6 query façade consumed directly by
// the HTTP layer.
func ProvideQueryFacade(i do.Injector) (*query.Facade, error) {
	games := do.MustInvoke[*mirror.Mirror[domain.Game]](i)
	externalGames := do.MustInvoke[*mirror.Mirror[domain.ExternalGame]](i)
	m := do.MustInvoke[*matcher.Matcher](i)
	return query.New(games, externalGames, m), nil
}
