package export

import (
	"encoding/json"
	"fmt"
)

// Document is the top-level export result: {"milestones": [...]}.
// Nested values are generic JSON maps so cached and freshly-fetched
// entities serialize identically (encoding/json sorts map keys).
type Document map[string]any

// rawFields converts an API object into its generic JSON form. The
// export stores raw field passthrough, not a curated subset.
func rawFields(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling entity: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshaling entity: %w", err)
	}
	return m, nil
}

// decodeDoc restores a cached checkpoint document into the generic
// form used by the export tree.
func decodeDoc(data json.RawMessage) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding checkpoint document: %w", err)
	}
	return m, nil
}

// encodeDoc serializes a resolved entity for checkpoint storage.
func encodeDoc(m map[string]any) (json.RawMessage, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding checkpoint document: %w", err)
	}
	return data, nil
}
