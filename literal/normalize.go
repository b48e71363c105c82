package literal

import "encoding/json"

// Normalize rewrites json.Number values inside v, decoded with
// json.Decoder.UseNumber, to int64 when integral and float64 otherwise.
// Maps and slices are rewritten in place.
func Normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, item := range t {
			t[k] = Normalize(item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = Normalize(item)
		}
		return t
	}
	return v
}
