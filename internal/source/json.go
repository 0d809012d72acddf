package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

func decodeJSON(data []byte, path string) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parse json: unexpected data after top-level value")
	}
	return selectList(normalizeNumbers(doc), path)
}

// normalizeNumbers turns json.Number into int64 when integral, float64
// otherwise, so loaded values compare like YAML and CUE ones.
func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		f, _ := x.Float64()
		return f
	case map[string]any:
		for k, elem := range x {
			x[k] = normalizeNumbers(elem)
		}
		return x
	case []any:
		for i, elem := range x {
			x[i] = normalizeNumbers(elem)
		}
		return x
	}
	return v
}
