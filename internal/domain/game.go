package domain

import "encoding/json/v2"

// Game is a catalog entity: one row per upstream "games" record. Id is the
// stable unsigned 64-bit id assigned by the upstream; upsert within the
// mirror is always by Id.
type Game struct {
	ID               uint64
	Name             string
	Category         GameCategory
	FirstReleaseDate int64 // seconds since Unix epoch, UTC; 0 = unknown
	Extra            map[string]any
}

// GetID implements the entity identity contract the store's Collection[T]
// relies on for upsert-by-id.
func (g Game) GetID() uint64 { return g.ID }

func (g Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(mergeExtra(g.Extra, map[string]any{
		"id":                 g.ID,
		"name":               g.Name,
		"category":           g.Category,
		"first_release_date": g.FirstReleaseDate,
	}))
}

func (g *Game) UnmarshalJSON(data []byte) error {
	var fields struct {
		ID               uint64       `json:"id"`
		Name             string       `json:"name"`
		Category         GameCategory `json:"category"`
		FirstReleaseDate int64        `json:"first_release_date"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := decodeExtra(data, "id", "name", "category", "first_release_date")
	if err != nil {
		return err
	}
	g.ID = fields.ID
	g.Name = fields.Name
	g.Category = fields.Category
	g.FirstReleaseDate = fields.FirstReleaseDate
	g.Extra = extra
	return nil
}
