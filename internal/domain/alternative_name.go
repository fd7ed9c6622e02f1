package domain

import "encoding/json/v2"

// AlternativeName is a catalog-curated synonym for a game title, pointing
// to one canonical Game via GameID. A GameID that does not resolve to a
// known Game is dangling: expansion yields no result and the item is
// dropped from matches rather than erroring.
type AlternativeName struct {
	ID     uint64
	Name   string
	GameID uint64
	Extra  map[string]any
}

func (a AlternativeName) GetID() uint64 { return a.ID }

func (a AlternativeName) MarshalJSON() ([]byte, error) {
	return json.Marshal(mergeExtra(a.Extra, map[string]any{
		"id":   a.ID,
		"name": a.Name,
		"game": a.GameID,
	}))
}

func (a *AlternativeName) UnmarshalJSON(data []byte) error {
	var fields struct {
		ID     uint64 `json:"id"`
		Name   string `json:"name"`
		GameID uint64 `json:"game"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := decodeExtra(data, "id", "name", "game")
	if err != nil {
		return err
	}
	a.ID = fields.ID
	a.Name = fields.Name
	a.GameID = fields.GameID
	a.Extra = extra
	return nil
}
