package sink

import (
	"bytes"
	"encoding/json"
)

// RenderJSON encodes l as indented JSON.
func RenderJSON(l Layout) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadJSON decodes a layout produced by RenderJSON.
func ReadJSON(data []byte) (Layout, error) {
	var l Layout
	err := json.Unmarshal(data, &l)
	return l, err
}
