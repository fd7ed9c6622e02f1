package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDefaultSearchCategory(t *testing.T) {
	assert.True(t, IsDefaultSearchCategory(GameCategoryMainGame))
	assert.True(t, IsDefaultSearchCategory(GameCategoryRemake))
	assert.True(t, IsDefaultSearchCategory(GameCategoryRemaster))
	assert.True(t, IsDefaultSearchCategory(GameCategoryStandaloneExpansion))
	assert.False(t, IsDefaultSearchCategory(GameCategoryDLCAddon))
	assert.False(t, IsDefaultSearchCategory(GameCategoryMod))
}

func TestExternalGameCategoryForLibrary(t *testing.T) {
	steam := uuid.MustParse("CB91DFC9-B977-43BF-8E70-55F46E410FAB")
	cat, ok := ExternalGameCategoryForLibrary(steam)
	require.True(t, ok)
	assert.Equal(t, ExternalGameCategorySteam, cat)

	unknown := uuid.New()
	_, ok = ExternalGameCategoryForLibrary(unknown)
	assert.False(t, ok)
}

func TestGame_MarshalUnmarshalRoundTrip(t *testing.T) {
	g := Game{
		ID:               42,
		Name:             "Doom",
		Category:         GameCategoryMainGame,
		FirstReleaseDate: 782611200,
		Extra:            map[string]any{"slug": "doom"},
	}

	data, err := g.MarshalJSON()
	require.NoError(t, err)

	var decoded Game
	require.NoError(t, decoded.UnmarshalJSON(data))

	assert.Equal(t, g.ID, decoded.ID)
	assert.Equal(t, g.Name, decoded.Name)
	assert.Equal(t, g.Category, decoded.Category)
	assert.Equal(t, g.FirstReleaseDate, decoded.FirstReleaseDate)
	assert.Equal(t, "doom", decoded.Extra["slug"])
}

func TestMetadataRequest_HasExternalHint(t *testing.T) {
	steam := uuid.MustParse("CB91DFC9-B977-43BF-8E70-55F46E410FAB")

	assert.False(t, MetadataRequest{}.HasExternalHint())
	assert.False(t, MetadataRequest{LibraryID: &steam}.HasExternalHint())
	assert.False(t, MetadataRequest{GameID: "220"}.HasExternalHint())
	assert.True(t, MetadataRequest{LibraryID: &steam, GameID: "220"}.HasExternalHint())
}
