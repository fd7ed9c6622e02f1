package domain

import "encoding/json/v2"

// decodeExtra unmarshals data into a plain map, then deletes every key
// already claimed by a struct's typed fields, leaving the upstream's
// opaque passthrough fields behind. Mirrors entities are never branched on
// beyond their few indexed fields (name, category, game, ...); everything
// else upstream sends along for the ride unmodified.
func decodeExtra(data []byte, claimed ...string) (map[string]any, error) {
	raw := make(map[string]any)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, key := range claimed {
		delete(raw, key)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// mergeExtra flattens a set of known fields and an Extra map into a single
// JSON object for marshaling, known fields taking precedence on conflict.
func mergeExtra(extra map[string]any, known map[string]any) map[string]any {
	out := make(map[string]any, len(extra)+len(known))
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range known {
		out[k] = v
	}
	return out
}
