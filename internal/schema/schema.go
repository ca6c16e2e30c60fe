// Package schema bridges JSON-described parameter and output schemas with the
// runtime schema used to validate tool payloads, and converts runtime schemas
// into the vendor function-parameter documents LLM APIs expect.
package schema

import (
	"encoding/json"
	"sort"
)

// Marker identifies a serialized runtime schema. Stored schema blobs carry
// this discriminant so readers never have to infer which form they hold.
const Marker = "runtime/v1"

// Kind identifies the structural type of a schema node.
type Kind string

// Schema node kinds.
const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindAny     Kind = "any"
)

// Schema is a runtime description of a data shape. Object nodes with nil
// Properties are open key-value maps accepting any content.
type Schema struct {
	Marker      string             `json:"$runtime,omitempty"`
	Kind        Kind               `json:"kind"`
	Description string             `json:"description,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Keys        []string           `json:"keys,omitempty"`
	Optional    bool               `json:"optional,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// document is the lenient intermediate form of a JSON schema description.
type document struct {
	Type        string                     `json:"type"`
	Description string                     `json:"description"`
	Items       json.RawMessage            `json:"items"`
	Properties  map[string]json.RawMessage `json:"properties"`
	Required    []string                   `json:"required"`
	Enum        []string                   `json:"enum"`
}

// FromJSON converts a JSON schema description into a runtime Schema. The
// conversion is deliberately lenient: unknown or missing type tags map to an
// accept-anything node, and malformed input degrades rather than failing.
// FromJSON never returns an error.
func FromJSON(raw json.RawMessage) *Schema {
	if len(raw) == 0 {
		return &Schema{Marker: Marker, Kind: KindAny}
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &Schema{Marker: Marker, Kind: KindAny}
	}

	s := fromDocument(&doc)
	s.Marker = Marker
	return s
}

func fromDocument(doc *document) *Schema {
	s := &Schema{Description: doc.Description}

	switch doc.Type {
	case "string":
		s.Kind = KindString
		s.Enum = doc.Enum
	case "number", "integer":
		s.Kind = KindNumber
	case "boolean":
		s.Kind = KindBoolean
	case "array":
		s.Kind = KindArray
		if len(doc.Items) > 0 {
			var items document
			if err := json.Unmarshal(doc.Items, &items); err == nil {
				s.Items = fromDocument(&items)
			}
		}
		if s.Items == nil {
			s.Items = &Schema{Kind: KindAny}
		}
	case "object":
		s.Kind = KindObject
		if len(doc.Properties) == 0 {
			// No property shape: open key-value map of anything.
			return s
		}

		required := make(map[string]bool, len(doc.Required))
		for _, name := range doc.Required {
			required[name] = true
		}

		s.Properties = make(map[string]*Schema, len(doc.Properties))
		s.Keys = make([]string, 0, len(doc.Properties))
		for name, raw := range doc.Properties {
			var prop document
			child := &Schema{Kind: KindAny}
			if err := json.Unmarshal(raw, &prop); err == nil {
				child = fromDocument(&prop)
			}
			child.Optional = !required[name]
			s.Properties[name] = child
			s.Keys = append(s.Keys, name)
		}
		sort.Strings(s.Keys)
	default:
		// Unknown tags are not an error: accept anything.
		s.Kind = KindAny
	}

	return s
}

// IsRuntime reports whether the raw blob is a serialized runtime Schema,
// detected by its explicit marker field.
func IsRuntime(raw json.RawMessage) bool {
	var probe struct {
		Marker string `json:"$runtime"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.Marker == Marker
}

// Parse decodes raw into a Schema: runtime-marked blobs deserialize directly,
// everything else goes through the JSON description bridge.
func Parse(raw json.RawMessage) *Schema {
	if IsRuntime(raw) {
		var s Schema
		if err := json.Unmarshal(raw, &s); err == nil {
			return &s
		}
	}
	return FromJSON(raw)
}
