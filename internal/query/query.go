// Package query implements C6, the query façade consumed directly by the
// HTTP layer: GetGame, Search, and GetMetadata, each translating a
// request into mirror/matcher calls and typed apperr results.
package query

import (
	"context"
	"strconv"
	"strings"

	"github.com/igdb-mirror/catalog-service/internal/apperr"
	"github.com/igdb-mirror/catalog-service/internal/domain"
	"github.com/igdb-mirror/catalog-service/internal/matcher"
	"github.com/igdb-mirror/catalog-service/internal/mirror"
)

// Facade implements GetGame, Search, and GetMetadata.
type Facade struct {
	games         *mirror.Mirror[domain.Game]
	externalGames *mirror.Mirror[domain.ExternalGame]
	matcher       *matcher.Matcher
}

// New constructs a Facade over the Game mirror (for direct lookup and the
// external shortcut's resolution step), the ExternalGame mirror (for the
// shortcut's composite lookup), and the Matcher (for name-based matching).
func New(games *mirror.Mirror[domain.Game], externalGames *mirror.Mirror[domain.ExternalGame], m *matcher.Matcher) *Facade {
	return &Facade{games: games, externalGames: externalGames, matcher: m}
}

// GetGame returns the game with the given id (§4.6).
func (f *Facade) GetGame(ctx context.Context, id uint64) (*domain.Game, error) {
	if id == 0 {
		return nil, apperr.BadInput("No ID specified.")
	}

	game, err := f.games.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, apperr.NotFound("Game not found.")
	}
	return game, nil
}

// Search returns the deduped, score-ranked search result for request,
// games only, scores discarded (§4.6).
func (f *Facade) Search(ctx context.Context, request *domain.SearchRequest) ([]*domain.Game, error) {
	if request == nil {
		return nil, apperr.BadInput("Missing search data.")
	}
	if strings.TrimSpace(request.SearchTerm) == "" {
		return nil, apperr.BadInput("No search term")
	}
	return f.matcher.Search(ctx, request.SearchTerm, true)
}

// GetMetadata resolves request to a single game: the external-store
// shortcut (§4.5.4) is tried first, then the matcher. A miss in either
// path yields (nil, nil) — GetMetadata never surfaces NotFound (§4.6,§7).
func (f *Facade) GetMetadata(ctx context.Context, request *domain.MetadataRequest) (*domain.Game, error) {
	if request == nil {
		return nil, apperr.BadInput("Missing metadata data.")
	}

	if game, ok, err := f.externalShortcut(ctx, *request); err != nil {
		return nil, err
	} else if ok {
		return game, nil
	}

	return f.matcher.Match(ctx, *request)
}

// externalShortcut implements §4.5.4: when request carries a recognized
// library id and a non-empty GameId, resolve via the ExternalGame
// composite index and skip the matcher entirely. ok is false when the
// shortcut's preconditions aren't met, so the caller falls through to
// name-based matching; it is true (with a possibly-nil game) once the
// shortcut itself has been taken, per invariant 9 ("no name-matching is
// performed" once the hint resolves).
func (f *Facade) externalShortcut(ctx context.Context, request domain.MetadataRequest) (*domain.Game, bool, error) {
	if !request.HasExternalHint() {
		return nil, false, nil
	}

	category, ok := domain.ExternalGameCategoryForLibrary(*request.LibraryID)
	if !ok {
		return nil, false, nil
	}

	externalGame, err := f.externalGames.Collection().GetByComposite(ctx, ExternalGameCompositeKey(request.GameID, category))
	if err != nil {
		return nil, false, err
	}
	if externalGame == nil {
		return nil, false, nil
	}

	game, err := f.games.GetItem(ctx, externalGame.GameID)
	if err != nil {
		return nil, false, err
	}
	return game, true, nil
}

// ExternalGameCompositeKey builds the same composite-index value used
// when ExternalGame rows are indexed (internal/di wires the matching
// IndexSpec.Composite.Value with this exact function).
func ExternalGameCompositeKey(uid string, category domain.ExternalGameCategory) string {
	return uid + "|" + strconv.Itoa(int(category))
}
