// Package decode converts loosely-typed maps into typed structs.
package decode

import "encoding/json"

// FromMap converts a map into a typed struct by round-tripping through JSON.
// Fields absent from the map keep their zero values.
func FromMap[T any](data map[string]any) (T, error) {
	var result T
	b, err := json.Marshal(data)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(b, &result)
	return result, err
}
