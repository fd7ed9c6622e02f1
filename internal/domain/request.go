package domain

import "github.com/google/uuid"

// SearchRequest is the body of POST /igdb/search.
type SearchRequest struct {
	SearchTerm string `json:"SearchTerm" validate:"required"`
}

// MetadataRequest is the body of POST /igdb/metadata. Name plus
// ReleaseYear drive the matcher (§4.5); LibraryId plus GameId drive the
// external-store shortcut (§4.5.4) checked before the matcher runs.
type MetadataRequest struct {
	Name        string     `json:"Name,omitempty"`
	ReleaseYear int        `json:"ReleaseYear,omitempty"`
	LibraryID   *uuid.UUID `json:"LibraryId,omitempty"`
	GameID      string     `json:"GameId,omitempty"`
}

// HasExternalHint reports whether the request carries both a non-nil
// library id and a non-empty GameId, the precondition for the external
// shortcut (§4.5.4). Whether the library id is a recognized one is not
// checked here.
func (r MetadataRequest) HasExternalHint() bool {
	return r.LibraryID != nil && r.GameID != ""
}
