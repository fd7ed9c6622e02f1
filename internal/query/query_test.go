package query

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igdb-mirror/catalog-service/internal/apperr"
	"github.com/igdb-mirror/catalog-service/internal/domain"
	"github.com/igdb-mirror/catalog-service/internal/matcher"
	"github.com/igdb-mirror/catalog-service/internal/mirror"
	"github.com/igdb-mirror/catalog-service/internal/store"
	"github.com/igdb-mirror/catalog-service/internal/upstream"
)

func newTestFacade(t *testing.T) *Facade {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	games, err := store.NewCollection(s, "games", store.IndexSpec[domain.Game]{
		TextValue: func(g *domain.Game) string { return g.Name },
	})
	require.NoError(t, err)

	altNames, err := store.NewCollection(s, "alternative_names", store.IndexSpec[domain.AlternativeName]{
		TextValue: func(a *domain.AlternativeName) string { return a.Name },
	})
	require.NoError(t, err)

	externalGames, err := store.NewCollection(s, "external_games", store.IndexSpec[domain.ExternalGame]{
		Composite: &store.CompositeIndex[domain.ExternalGame]{
			Name: "uid_category",
			Value: func(e *domain.ExternalGame) string {
				return ExternalGameCompositeKey(e.UID, e.Category)
			},
		},
	})
	require.NoError(t, err)

	client := upstream.New("http://example.invalid", "", nil)
	gamesMirror := mirror.New(games, client, "/games", mirror.WebhookConfig{}, nil)
	altNamesMirror := mirror.New(altNames, client, "/alternative_names", mirror.WebhookConfig{}, nil)
	externalGamesMirror := mirror.New(externalGames, client, "/external_games", mirror.WebhookConfig{}, nil)

	m := matcher.New(gamesMirror, altNamesMirror)
	return New(gamesMirror, externalGamesMirror, m)
}

func TestGetGame_ZeroID(t *testing.T) {
	f := newTestFacade(t)
	_, err := f.GetGame(context.Background(), 0)
	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, apperr.As(err, &appErr))
	assert.Equal(t, "No ID specified.", appErr.Message)
}

func TestGetGame_NotFound(t *testing.T) {
	f := newTestFacade(t)
	_, err := f.GetGame(context.Background(), 999)
	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, apperr.As(err, &appErr))
	assert.Equal(t, "Game not found.", appErr.Message)
}

func TestGetGame_Found(t *testing.T) {
	f := newTestFacade(t)
	ctx := context.Background()
	require.NoError(t, f.games.Add(ctx, []*domain.Game{{ID: 1, Name: "Doom"}}))

	game, err := f.GetGame(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), game.ID)
}

func TestSearch_NilRequest(t *testing.T) {
	f := newTestFacade(t)
	_, err := f.Search(context.Background(), nil)
	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, apperr.As(err, &appErr))
	assert.Equal(t, "Missing search data.", appErr.Message)
}

func TestSearch_EmptyTerm(t *testing.T) {
	f := newTestFacade(t)
	_, err := f.Search(context.Background(), &domain.SearchRequest{SearchTerm: "   "})
	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, apperr.As(err, &appErr))
	assert.Equal(t, "No search term", appErr.Message)
}

func TestGetMetadata_NilRequest(t *testing.T) {
	f := newTestFacade(t)
	_, err := f.GetMetadata(context.Background(), nil)
	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, apperr.As(err, &appErr))
	assert.Equal(t, "Missing metadata data.", appErr.Message)
}

func TestGetMetadata_ExternalShortcut(t *testing.T) {
	f := newTestFacade(t)
	ctx := context.Background()

	require.NoError(t, f.games.Add(ctx, []*domain.Game{{ID: 42, Name: "Whatever"}}))
	require.NoError(t, f.externalGames.Add(ctx, []*domain.ExternalGame{
		{ID: 1, UID: "220", Category: domain.ExternalGameCategorySteam, GameID: 42},
	}))

	steam := uuid.MustParse("CB91DFC9-B977-43BF-8E70-55F46E410FAB")
	game, err := f.GetMetadata(ctx, &domain.MetadataRequest{LibraryID: &steam, GameID: "220", Name: "whatever"})
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Equal(t, uint64(42), game.ID)
}

func TestGetMetadata_NoMatchReturnsNilNoError(t *testing.T) {
	f := newTestFacade(t)
	game, err := f.GetMetadata(context.Background(), &domain.MetadataRequest{Name: "Nothing Like This Exists"})
	require.NoError(t, err)
	require.Nil(t, game)
}

func TestExternalGameCompositeKey(t *testing.T) {
	key := ExternalGameCompositeKey("220", domain.ExternalGameCategorySteam)
	assert.Equal(t, "220|"+strconv.Itoa(int(domain.ExternalGameCategorySteam)), key)
}
