package schema

// VendorParams converts a runtime Schema into the vendor-neutral function
// parameter document used for tool registration. The vendor contract mandates
// an object root, so non-object schemas are wrapped under an "input" property.
// Conversion must never abort tool registration: any internal failure yields
// an empty open object instead of an error.
func (s *Schema) VendorParams() (params map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			params = emptyObjectParams()
		}
	}()

	if s == nil {
		return emptyObjectParams()
	}

	root := s.vendorNode()
	if root["type"] != "object" {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{"input": root},
			"required":   []string{"input"},
		}
	}
	return root
}

func (s *Schema) vendorNode() map[string]any {
	node := make(map[string]any)
	if s.Description != "" {
		node["description"] = s.Description
	}

	switch s.Kind {
	case KindString:
		node["type"] = "string"
		if len(s.Enum) > 0 {
			// Best effort: enums degrade to enumerated strings.
			node["enum"] = s.Enum
		}
	case KindNumber:
		node["type"] = "number"
	case KindBoolean:
		node["type"] = "boolean"
	case KindArray:
		node["type"] = "array"
		if s.Items != nil {
			node["items"] = s.Items.vendorNode()
		} else {
			node["items"] = map[string]any{"type": "string"}
		}
	case KindObject:
		node["type"] = "object"
		properties := make(map[string]any)
		required := make([]string, 0)
		for _, key := range s.keys() {
			prop := s.Properties[key]
			properties[key] = prop.vendorNode()
			if !prop.Optional {
				required = append(required, key)
			}
		}
		node["properties"] = properties
		node["required"] = required
	default:
		// Unrecognized kinds fall back to a plain string.
		node["type"] = "string"
	}

	return node
}

func (s *Schema) keys() []string {
	if len(s.Keys) > 0 {
		return s.Keys
	}
	keys := make([]string, 0, len(s.Properties))
	for key := range s.Properties {
		keys = append(keys, key)
	}
	return keys
}

func emptyObjectParams() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
		"required":   []string{},
	}
}
