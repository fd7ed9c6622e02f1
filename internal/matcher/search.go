// Package matcher implements C5: two-source fuzzy title search and
// multi-pass disambiguation over the catalog mirror.
package matcher

import (
	"context"
	"sort"

	"github.com/igdb-mirror/catalog-service/internal/domain"
	"github.com/igdb-mirror/catalog-service/internal/mirror"
)

// searchLimit bounds each of the two text-search sources (§4.5.1: "limit 30").
const searchLimit = 30

// candidateFetchLimit over-fetches from the Game text index so that,
// after filtering to defaultSearchCategories, up to searchLimit survivors
// remain; the store has no native "filter then limit" primitive.
const candidateFetchLimit = 120

// candidate is one scored hit from either search source, always
// expanded to a concrete Game.
type candidate struct {
	score float64
	name  string
	game  *domain.Game
}

// Matcher implements Search and Match over the Game and AlternativeName
// mirrors.
type Matcher struct {
	games    *mirror.Mirror[domain.Game]
	altNames *mirror.Mirror[domain.AlternativeName]
}

// New constructs a Matcher over the given Game and AlternativeName mirrors.
func New(games *mirror.Mirror[domain.Game], altNames *mirror.Mirror[domain.AlternativeName]) *Matcher {
	return &Matcher{games: games, altNames: altNames}
}

// searchByName implements §4.5.1's SearchByName: text search over Game,
// filtered to defaultSearchCategories, sorted by score desc, limit 30.
func (m *Matcher) searchByName(ctx context.Context, term string) ([]candidate, error) {
	hits, err := m.games.Collection().TextSearch(ctx, term, candidateFetchLimit)
	if err != nil {
		return nil, err
	}

	candidates := make([]candidate, 0, searchLimit)
	for _, hit := range hits {
		if !domain.IsDefaultSearchCategory(hit.Item.Category) {
			continue
		}
		candidates = append(candidates, candidate{score: hit.Score, name: hit.Item.Name, game: hit.Item})
		if len(candidates) == searchLimit {
			break
		}
	}
	return candidates, nil
}

// searchByAlternativeNames implements §4.5.1's SearchByAlternativeNames:
// text search over AlternativeName, limit 30, each hit's game id expanded
// via the Game mirror; hits whose game does not resolve are dropped.
func (m *Matcher) searchByAlternativeNames(ctx context.Context, term string) ([]candidate, error) {
	hits, err := m.altNames.Collection().TextSearch(ctx, term, searchLimit)
	if err != nil {
		return nil, err
	}

	candidates := make([]candidate, 0, len(hits))
	for _, hit := range hits {
		game, err := m.games.GetItem(ctx, hit.Item.GameID)
		if err != nil {
			return nil, err
		}
		if game == nil {
			continue
		}
		candidates = append(candidates, candidate{score: hit.Score, name: hit.Item.Name, game: game})
	}
	return candidates, nil
}

// search runs both sources and merges them: primary first, alternatives
// second, stable-sorted by score descending (§4.5.1's "Merge").
func (m *Matcher) search(ctx context.Context, term string) ([]candidate, error) {
	primary, err := m.searchByName(ctx, term)
	if err != nil {
		return nil, err
	}
	alternatives, err := m.searchByAlternativeNames(ctx, term)
	if err != nil {
		return nil, err
	}

	merged := make([]candidate, 0, len(primary)+len(alternatives))
	merged = append(merged, primary...)
	merged = append(merged, alternatives...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].score > merged[j].score
	})
	return merged, nil
}

// Search returns games ranked by descending text score, the union of
// name-search and alt-name-search results. When removeDuplicates is set,
// only the first occurrence of each Game.id is retained.
func (m *Matcher) Search(ctx context.Context, term string, removeDuplicates bool) ([]*domain.Game, error) {
	merged, err := m.search(ctx, term)
	if err != nil {
		return nil, err
	}

	games := make([]*domain.Game, 0, len(merged))
	seen := make(map[uint64]bool, len(merged))
	for _, c := range merged {
		if removeDuplicates {
			if seen[c.game.ID] {
				continue
			}
			seen[c.game.ID] = true
		}
		games = append(games, c.game)
	}
	return games, nil
}
