package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/invopop/jsonschema"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/schema"
	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/decode"
)

// reflector generates inline JSON schema documents from builtin argument structs.
var reflector = jsonschema.Reflector{
	Anonymous:      true,
	DoNotReference: true,
	ExpandedStruct: true,
}

// reflectParams produces the runtime parameter schema for an args struct.
func reflectParams(args any) *schema.Schema {
	doc, err := json.Marshal(reflector.Reflect(args))
	if err != nil {
		return &schema.Schema{Marker: schema.Marker, Kind: schema.KindObject}
	}
	return schema.FromJSON(doc)
}

type echoArgs struct {
	Message string `json:"message" jsonschema:"description=Text to echo back"`
}

type currentTimeArgs struct {
	Timezone string `json:"timezone,omitempty" jsonschema:"description=IANA timezone name; defaults to UTC"`
}

type calculatorArgs struct {
	Operation string  `json:"operation" jsonschema:"enum=add,enum=subtract,enum=multiply,enum=divide,description=Arithmetic operation"`
	A         float64 `json:"a" jsonschema:"description=First operand"`
	B         float64 `json:"b" jsonschema:"description=Second operand"`
}

type jsonFormatArgs struct {
	JSON string `json:"json" jsonschema:"description=JSON text to pretty-print"`
}

type regexExtractArgs struct {
	Pattern string `json:"pattern" jsonschema:"description=Go regular expression"`
	Text    string `json:"text" jsonschema:"description=Text to search"`
}

var builtins = buildRegistry()

func buildRegistry() map[string]Definition {
	defs := []Definition{
		{
			Name:        "echo",
			Description: "Echoes the provided message back to the caller.",
			Parameters:  reflectParams(&echoArgs{}),
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				a, err := decode.FromMap[echoArgs](args)
				if err != nil {
					return "", err
				}
				return a.Message, nil
			},
		},
		{
			Name:        "current_time",
			Description: "Returns the current time, optionally in a specific timezone.",
			Parameters:  reflectParams(&currentTimeArgs{}),
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				a, err := decode.FromMap[currentTimeArgs](args)
				if err != nil {
					return "", err
				}
				loc := time.UTC
				if a.Timezone != "" {
					l, err := time.LoadLocation(a.Timezone)
					if err != nil {
						return "", fmt.Errorf("unknown timezone %q: %w", a.Timezone, err)
					}
					loc = l
				}
				return time.Now().In(loc).Format(time.RFC3339), nil
			},
		},
		{
			Name:        "calculator",
			Description: "Performs basic arithmetic on two numbers.",
			Parameters:  reflectParams(&calculatorArgs{}),
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				a, err := decode.FromMap[calculatorArgs](args)
				if err != nil {
					return "", err
				}
				var result float64
				switch a.Operation {
				case "add":
					result = a.A + a.B
				case "subtract":
					result = a.A - a.B
				case "multiply":
					result = a.A * a.B
				case "divide":
					if a.B == 0 {
						return "", fmt.Errorf("division by zero")
					}
					result = a.A / a.B
				default:
					return "", fmt.Errorf("unknown operation %q", a.Operation)
				}
				return fmt.Sprintf("%g", result), nil
			},
		},
		{
			Name:        "json_format",
			Description: "Pretty-prints a JSON document with two-space indentation.",
			Parameters:  reflectParams(&jsonFormatArgs{}),
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				a, err := decode.FromMap[jsonFormatArgs](args)
				if err != nil {
					return "", err
				}
				var value any
				if err := json.Unmarshal([]byte(a.JSON), &value); err != nil {
					return "", fmt.Errorf("invalid JSON: %w", err)
				}
				out, err := json.MarshalIndent(value, "", "  ")
				if err != nil {
					return "", err
				}
				return string(out), nil
			},
		},
		{
			Name:        "regex_extract",
			Description: "Extracts all matches of a regular expression from text.",
			Parameters:  reflectParams(&regexExtractArgs{}),
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				a, err := decode.FromMap[regexExtractArgs](args)
				if err != nil {
					return "", err
				}
				re, err := regexp.Compile(a.Pattern)
				if err != nil {
					return "", fmt.Errorf("invalid pattern: %w", err)
				}
				matches := re.FindAllString(a.Text, -1)
				if len(matches) == 0 {
					return "no matches", nil
				}
				return strings.Join(matches, "\n"), nil
			},
		},
	}

	registry := make(map[string]Definition, len(defs))
	for _, def := range defs {
		def.Execute = guardArgs(def.Parameters, def.Execute)
		registry[def.Name] = def
	}
	return registry
}

// Builtin returns the builtin definition registered under name.
func Builtin(name string) (Definition, bool) {
	def, ok := builtins[name]
	return def, ok
}

// Builtins returns all builtin definitions.
func Builtins() []Definition {
	defs := make([]Definition, 0, len(builtins))
	for _, def := range builtins {
		defs = append(defs, def)
	}
	return defs
}

// IsBuiltinName reports whether name belongs to a builtin tool.
func IsBuiltinName(name string) bool {
	_, ok := builtins[name]
	return ok
}
