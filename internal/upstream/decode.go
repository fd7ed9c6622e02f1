package upstream

import "encoding/json/v2"

func decodeJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
