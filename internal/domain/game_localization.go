package domain

import "encoding/json/v2"

// GameLocalization is a region/language-specific name for a Game.
type GameLocalization struct {
	ID     uint64
	Name   string
	GameID uint64
	Extra  map[string]any
}

func (l GameLocalization) GetID() uint64 { return l.ID }

func (l GameLocalization) MarshalJSON() ([]byte, error) {
	return json.Marshal(mergeExtra(l.Extra, map[string]any{
		"id":   l.ID,
		"name": l.Name,
		"game": l.GameID,
	}))
}

func (l *GameLocalization) UnmarshalJSON(data []byte) error {
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
	l.ID = fields.ID
	l.Name = fields.Name
	l.GameID = fields.GameID
	l.Extra = extra
	return nil
}
