package domain

import "github.com/google/uuid"

// LibraryID identifies a storefront a client may hint with in a
// MetadataRequest: one of Steam, GOG, Epic, or itch.io. The fixed table
// below maps each to the ExternalGameCategory used to look up the mapping
// row in the ExternalGame collection.
var libraryIDCategories = map[uuid.UUID]ExternalGameCategory{
	uuid.MustParse("CB91DFC9-B977-43BF-8E70-55F46E410FAB"): ExternalGameCategorySteam,
	uuid.MustParse("AEBE8B7C-6DC3-4A66-AF31-E7375C6B5E9E"): ExternalGameCategoryGOG,
	uuid.MustParse("00000002-DBD1-46C6-B5D0-B1BA559D10E4"): ExternalGameCategoryEpic,
	uuid.MustParse("00000001-EBB2-4EEC-ABCB-7C89937A42BB"): ExternalGameCategoryItchIO,
}

// ExternalGameCategoryForLibrary resolves a client-supplied library id to
// the ExternalGameCategory it maps to. ok is false for any id outside the
// fixed four-entry table.
func ExternalGameCategoryForLibrary(id uuid.UUID) (category ExternalGameCategory, ok bool) {
	category, ok = libraryIDCategories[id]
	return category, ok
}
