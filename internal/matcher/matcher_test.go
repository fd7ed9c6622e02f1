package matcher

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/igdb-mirror/catalog-service/internal/domain"
	"github.com/igdb-mirror/catalog-service/internal/mirror"
	"github.com/igdb-mirror/catalog-service/internal/store"
	"github.com/igdb-mirror/catalog-service/internal/upstream"
)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	gamesCollection, err := store.NewCollection(s, "games", store.IndexSpec[domain.Game]{
		TextValue: func(g *domain.Game) string { return g.Name },
	})
	require.NoError(t, err)

	altNamesCollection, err := store.NewCollection(s, "alternative_names", store.IndexSpec[domain.AlternativeName]{
		TextValue: func(a *domain.AlternativeName) string { return a.Name },
	})
	require.NoError(t, err)

	client := upstream.New("http://example.invalid", "", nil)
	gamesMirror := mirror.New(gamesCollection, client, "/games", mirror.WebhookConfig{}, nil)
	altNamesMirror := mirror.New(altNamesCollection, client, "/alternative_names", mirror.WebhookConfig{}, nil)

	return New(gamesMirror, altNamesMirror)
}

func epoch(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix()
}

func TestMatch_RomanNumeralPass(t *testing.T) {
	m := newTestMatcher(t)
	ctx := context.Background()

	require.NoError(t, m.games.Add(ctx, []*domain.Game{
		{ID: 10, Name: "Final Fantasy VII", Category: domain.GameCategoryMainGame},
	}))

	game, err := m.Match(ctx, domain.MetadataRequest{Name: "final fantasy 7"})
	require.NoError(t, err)
	require.NotNil(t, game)
	require.Equal(t, uint64(10), game.ID)
}

func TestMatch_YearDisambiguation(t *testing.T) {
	m := newTestMatcher(t)
	ctx := context.Background()

	require.NoError(t, m.games.Add(ctx, []*domain.Game{
		{ID: 1, Name: "Prey", Category: domain.GameCategoryMainGame, FirstReleaseDate: epoch(2006, 7, 11)},
		{ID: 2, Name: "Prey", Category: domain.GameCategoryMainGame, FirstReleaseDate: epoch(2017, 5, 5)},
	}))

	game, err := m.Match(ctx, domain.MetadataRequest{Name: "Prey", ReleaseYear: 2017})
	require.NoError(t, err)
	require.NotNil(t, game)
	require.Equal(t, uint64(2), game.ID)
}

func TestMatch_OldestWinsFallback(t *testing.T) {
	m := newTestMatcher(t)
	ctx := context.Background()

	require.NoError(t, m.games.Add(ctx, []*domain.Game{
		{ID: 1, Name: "Doom", Category: domain.GameCategoryMainGame, FirstReleaseDate: epoch(1993, 12, 10)},
		{ID: 2, Name: "Doom", Category: domain.GameCategoryMainGame, FirstReleaseDate: epoch(2016, 5, 13)},
	}))

	game, err := m.Match(ctx, domain.MetadataRequest{Name: "Doom"})
	require.NoError(t, err)
	require.NotNil(t, game)
	require.Equal(t, uint64(1), game.ID)
}

func TestMatch_SubtitleTrim(t *testing.T) {
	m := newTestMatcher(t)
	ctx := context.Background()

	require.NoError(t, m.games.Add(ctx, []*domain.Game{
		{ID: 1, Name: "Half-Life 2: Episode One", Category: domain.GameCategoryMainGame},
	}))

	game, err := m.Match(ctx, domain.MetadataRequest{Name: "Half-Life 2"})
	require.NoError(t, err)
	require.NotNil(t, game)
	require.Equal(t, uint64(1), game.ID)
}

func TestMatch_NoResult(t *testing.T) {
	m := newTestMatcher(t)
	game, err := m.Match(context.Background(), domain.MetadataRequest{Name: "Nonexistent Game Title"})
	require.NoError(t, err)
	require.Nil(t, game)
}

func TestSearch_AlternativeNameHit(t *testing.T) {
	m := newTestMatcher(t)
	ctx := context.Background()

	require.NoError(t, m.games.Add(ctx, []*domain.Game{
		{ID: 7, Name: "The Elder Scrolls V: Skyrim", Category: domain.GameCategoryMainGame},
	}))
	require.NoError(t, m.altNames.Add(ctx, []*domain.AlternativeName{
		{ID: 1, Name: "TESV", GameID: 7},
	}))

	games, err := m.Search(ctx, "TESV", true)
	require.NoError(t, err)

	found := false
	for _, g := range games {
		if g.ID == 7 {
			found = true
		}
	}
	require.True(t, found)
}

func TestSearch_Dedup(t *testing.T) {
	m := newTestMatcher(t)
	ctx := context.Background()

	require.NoError(t, m.games.Add(ctx, []*domain.Game{
		{ID: 1, Name: "Quake Champions", Category: domain.GameCategoryMainGame},
	}))
	require.NoError(t, m.altNames.Add(ctx, []*domain.AlternativeName{
		{ID: 1, Name: "Quake Champions", GameID: 1},
	}))

	games, err := m.Search(ctx, "Quake Champions", true)
	require.NoError(t, err)

	seen := map[uint64]int{}
	for _, g := range games {
		seen[g.ID]++
	}
	for id, count := range seen {
		require.LessOrEqualf(t, count, 1, "game %d appeared %d times", id, count)
	}
}
