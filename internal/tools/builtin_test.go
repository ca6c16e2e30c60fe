package tools_test

import (
	"context"
	"strings"
	"testing"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/tools"
)

func TestBuiltinRegistry(t *testing.T) {
	expected := []string{"echo", "current_time", "calculator", "json_format", "regex_extract"}

	for _, name := range expected {
		if !tools.IsBuiltinName(name) {
			t.Errorf("IsBuiltinName(%q) = false, want true", name)
		}
		def, ok := tools.Builtin(name)
		if !ok {
			t.Errorf("Builtin(%q) not found", name)
			continue
		}
		if def.Execute == nil {
			t.Errorf("Builtin(%q) has no execute function", name)
		}
		if def.Parameters == nil {
			t.Errorf("Builtin(%q) has no parameter schema", name)
		}
	}

	if tools.IsBuiltinName("weather") {
		t.Error("IsBuiltinName(weather) = true, want false")
	}
	if got := len(tools.Builtins()); got != len(expected) {
		t.Errorf("Builtins() returned %d definitions, want %d", got, len(expected))
	}
}

func TestBuiltinEcho(t *testing.T) {
	def, _ := tools.Builtin("echo")

	out, err := def.Execute(context.Background(), map[string]any{"message": "hello"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "hello" {
		t.Errorf("output = %q, want hello", out)
	}
}

func TestBuiltinCalculator(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    string
		wantErr bool
	}{
		{"add", map[string]any{"operation": "add", "a": 2.0, "b": 3.0}, "5", false},
		{"subtract", map[string]any{"operation": "subtract", "a": 10.0, "b": 4.0}, "6", false},
		{"multiply", map[string]any{"operation": "multiply", "a": 2.5, "b": 4.0}, "10", false},
		{"divide", map[string]any{"operation": "divide", "a": 9.0, "b": 2.0}, "4.5", false},
		{"divide by zero", map[string]any{"operation": "divide", "a": 1.0, "b": 0.0}, "", true},
		{"unknown operation", map[string]any{"operation": "modulo", "a": 1.0, "b": 2.0}, "", true},
	}

	def, _ := tools.Builtin("calculator")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := def.Execute(context.Background(), tt.args)

			if tt.wantErr {
				if err == nil {
					t.Error("Execute() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestBuiltinJSONFormat(t *testing.T) {
	def, _ := tools.Builtin("json_format")

	out, err := def.Execute(context.Background(), map[string]any{"json": `{"b":1,"a":[2]}`})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "\n  \"a\"") {
		t.Errorf("output = %q, want indented JSON", out)
	}

	if _, err := def.Execute(context.Background(), map[string]any{"json": "{broken"}); err == nil {
		t.Error("Execute() error = nil for invalid JSON, want error")
	}
}

func TestBuiltinRegexExtract(t *testing.T) {
	def, _ := tools.Builtin("regex_extract")

	out, err := def.Execute(context.Background(), map[string]any{
		"pattern": `\d+`,
		"text":    "order 12 shipped 345 units",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "12\n345" {
		t.Errorf("output = %q, want matches joined by newline", out)
	}

	out, err = def.Execute(context.Background(), map[string]any{
		"pattern": `xyz`,
		"text":    "nothing here",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "no matches" {
		t.Errorf("output = %q, want no matches", out)
	}

	if _, err := def.Execute(context.Background(), map[string]any{"pattern": "[", "text": "x"}); err == nil {
		t.Error("Execute() error = nil for invalid pattern, want error")
	}
}

func TestBuiltinCurrentTime(t *testing.T) {
	def, _ := tools.Builtin("current_time")

	if _, err := def.Execute(context.Background(), map[string]any{}); err != nil {
		t.Errorf("Execute() error = %v for default timezone", err)
	}

	if _, err := def.Execute(context.Background(), map[string]any{"timezone": "Not/AZone"}); err == nil {
		t.Error("Execute() error = nil for unknown timezone, want error")
	}
}

func TestBuiltinRejectsInvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]any
	}{
		{"echo missing message", "echo", map[string]any{}},
		{"calculator missing operands", "calculator", map[string]any{"operation": "add"}},
		{"calculator wrong operand type", "calculator", map[string]any{"operation": "add", "a": "two", "b": 3.0}},
		{"regex_extract missing text", "regex_extract", map[string]any{"pattern": `\d+`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, _ := tools.Builtin(tt.tool)

			_, err := def.Execute(context.Background(), tt.args)
			if err == nil {
				t.Fatal("Execute() error = nil, want validation error")
			}
			if !strings.Contains(err.Error(), "invalid arguments") {
				t.Errorf("error = %v, want invalid arguments", err)
			}
		})
	}
}

func TestBuiltinVendorParams(t *testing.T) {
	def, _ := tools.Builtin("calculator")
	params := def.VendorParams()

	if params["type"] != "object" {
		t.Fatalf("type = %v, want object", params["type"])
	}

	properties, ok := params["properties"].(map[string]any)
	if !ok {
		t.Fatal("properties missing")
	}
	for _, key := range []string{"operation", "a", "b"} {
		if _, ok := properties[key]; !ok {
			t.Errorf("missing property %q", key)
		}
	}
}
