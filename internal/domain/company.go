package domain

import "encoding/json/v2"

// Company is an id-indexed-only passthrough entity class: the mirror
// stores it for point lookups but defines no secondary indexes over it.
type Company struct {
	ID    uint64
	Extra map[string]any
}

func (c Company) GetID() uint64 { return c.ID }

func (c Company) MarshalJSON() ([]byte, error) {
	return json.Marshal(mergeExtra(c.Extra, map[string]any{
		"id": c.ID,
	}))
}

func (c *Company) UnmarshalJSON(data []byte) error {
	var fields struct {
		ID uint64 `json:"id"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	extra, err := decodeExtra(data, "id")
	if err != nil {
		return err
	}
	c.ID = fields.ID
	c.Extra = extra
	return nil
}
