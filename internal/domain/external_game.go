package domain

import "encoding/json/v2"

// ExternalGame maps a storefront-local id (UID, e.g. a Steam appid) to a
// catalog Game.ID. Looked up by the composite (UID, Category) pair, used
// by the external-store shortcut (§4.5.4) to bypass the matcher entirely.
type ExternalGame struct {
	ID       uint64
	UID      string
	Category ExternalGameCategory
	GameID   uint64
	Extra    map[string]any
}

func (e ExternalGame) GetID() uint64 { return e.ID }

func (e ExternalGame) MarshalJSON() ([]byte, error) {
	return json.Marshal(mergeExtra(e.Extra, map[string]any{
		"id":       e.ID,
		"uid":      e.UID,
		"category": e.Category,
		"game":     e.GameID,
	}))
}

func (e *ExternalGame) UnmarshalJSON(data []byte) error {
	var fields struct {
		ID       uint64               `json:"id"`
		UID      string               `json:"uid"`
		Category ExternalGameCategory `json:"category"`
		GameID   uint64               `json:"game"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := decodeExtra(data, "id", "uid", "category", "game")
	if err != nil {
		return err
	}
	e.ID = fields.ID
	e.UID = fields.UID
	e.Category = fields.Category
	e.GameID = fields.GameID
	e.Extra = extra
	return nil
}
