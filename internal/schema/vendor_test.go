package schema_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/schema"
)

func TestVendorParams_ObjectRoot(t *testing.T) {
	s := schema.FromJSON(json.RawMessage(`{
		"type": "object",
		"properties": {
			"city": {"type": "string", "description": "City name"},
			"days": {"type": "number"}
		},
		"required": ["city"]
	}`))

	params := s.VendorParams()

	if params["type"] != "object" {
		t.Fatalf("type = %v, want object", params["type"])
	}

	properties, ok := params["properties"].(map[string]any)
	if !ok {
		t.Fatal("properties missing or wrong type")
	}

	city, ok := properties["city"].(map[string]any)
	if !ok {
		t.Fatal("city property missing")
	}
	if city["type"] != "string" {
		t.Errorf("city type = %v, want string", city["type"])
	}
	if city["description"] != "City name" {
		t.Errorf("city description = %v, want City name", city["description"])
	}

	required, ok := params["required"].([]string)
	if !ok {
		t.Fatal("required missing or wrong type")
	}
	if !reflect.DeepEqual(required, []string{"city"}) {
		t.Errorf("required = %v, want [city]", required)
	}
}

func TestVendorParams_NonObjectRootWrapped(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		innerType string
	}{
		{"string root", `{"type": "string"}`, "string"},
		{"number root", `{"type": "number"}`, "number"},
		{"array root", `{"type": "array", "items": {"type": "string"}}`, "array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := schema.FromJSON(json.RawMessage(tt.input)).VendorParams()

			if params["type"] != "object" {
				t.Fatalf("root type = %v, want object", params["type"])
			}

			properties, ok := params["properties"].(map[string]any)
			if !ok {
				t.Fatal("properties missing")
			}
			input, ok := properties["input"].(map[string]any)
			if !ok {
				t.Fatal("wrapped input property missing")
			}
			if input["type"] != tt.innerType {
				t.Errorf("input type = %v, want %s", input["type"], tt.innerType)
			}

			required, ok := params["required"].([]string)
			if !ok || !reflect.DeepEqual(required, []string{"input"}) {
				t.Errorf("required = %v, want [input]", params["required"])
			}
		})
	}
}

func TestVendorParams_NilSchema(t *testing.T) {
	var s *schema.Schema
	params := s.VendorParams()

	if params["type"] != "object" {
		t.Errorf("type = %v, want object", params["type"])
	}
	properties, ok := params["properties"].(map[string]any)
	if !ok || len(properties) != 0 {
		t.Errorf("properties = %v, want empty object", params["properties"])
	}
}

func TestVendorParams_ArrayWithoutItems(t *testing.T) {
	s := &schema.Schema{Kind: schema.KindArray}
	params := s.VendorParams()

	properties := params["properties"].(map[string]any)
	input := properties["input"].(map[string]any)
	items, ok := input["items"].(map[string]any)
	if !ok {
		t.Fatal("items missing for array schema")
	}
	if items["type"] != "string" {
		t.Errorf("items type = %v, want string", items["type"])
	}
}

func TestVendorParams_EnumCarriedThrough(t *testing.T) {
	s := schema.FromJSON(json.RawMessage(`{
		"type": "object",
		"properties": {
			"operation": {"type": "string", "enum": ["add", "subtract"]}
		},
		"required": ["operation"]
	}`))

	properties := s.VendorParams()["properties"].(map[string]any)
	operation := properties["operation"].(map[string]any)

	enum, ok := operation["enum"].([]string)
	if !ok {
		t.Fatal("enum missing")
	}
	if !reflect.DeepEqual(enum, []string{"add", "subtract"}) {
		t.Errorf("enum = %v, want [add subtract]", enum)
	}
}
