package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/providers"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/schema"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/tools"
)

const defaultInstructions = "You are a helpful assistant."

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
)

// RunContext carries per-invocation identity fields available to
// instruction templates.
type RunContext struct {
	UserID    string
	AgentID   uuid.UUID
	SessionID string
	Metadata  map[string]any
}

// Renderer produces the final instruction text for one run.
type Renderer func(rc RunContext) string

// Descriptor is the runnable form of an agent record: rendered instructions,
// merged model settings, resolved tools and an optional output schema.
type Descriptor struct {
	Name         string
	Instructions Renderer
	Settings     providers.Settings
	Tools        []tools.Definition
	OutputSchema *schema.Schema
	Handoffs     []string
}

// Assembler converts stored agent records into descriptors.
type Assembler struct {
	resolver *tools.Resolver
	logger   *slog.Logger
}

// NewAssembler creates an assembler backed by the given tool resolver.
func NewAssembler(resolver *tools.Resolver, logger *slog.Logger) *Assembler {
	return &Assembler{
		resolver: resolver,
		logger:   logger.With("system", "assembler"),
	}
}

// Assemble builds a descriptor from an agent record. Tool resolution never
// fails the assembly; handoffs are carried through unresolved.
func (a *Assembler) Assemble(ctx context.Context, record *Agent) (*Descriptor, error) {
	settings, err := mergeModelSettings(record)
	if err != nil {
		return nil, fmt.Errorf("merge model config for agent %s: %w", record.ID, err)
	}

	desc := &Descriptor{
		Name:         record.Name,
		Instructions: newRenderer(instructionTemplate(record)),
		Settings:     settings,
		Tools:        a.resolver.Resolve(ctx, record.Tools),
		Handoffs:     record.Handoffs,
	}

	if len(record.OutputSchema) > 0 {
		desc.OutputSchema = schema.Parse(record.OutputSchema)
	}

	if len(record.Handoffs) > 0 {
		a.logger.Warn("handoff targets are not resolved at assembly time",
			"agent", record.ID, "handoffs", record.Handoffs)
	}

	return desc, nil
}

// instructionTemplate picks the instruction text: the instructions field
// wins, the legacy system prompt is a fallback.
func instructionTemplate(record *Agent) string {
	if record.Instructions != "" {
		return record.Instructions
	}
	if record.SystemPrompt != "" {
		return record.SystemPrompt
	}
	return defaultInstructions
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// newRenderer wraps a template in a closure that substitutes {{key}}
// placeholders with run context fields. Unmatched placeholders are left
// verbatim; empty context fields count as missing so their placeholders
// survive rendering too.
func newRenderer(template string) Renderer {
	return func(rc RunContext) string {
		fields := map[string]any{}
		if rc.UserID != "" {
			fields["userId"] = rc.UserID
		}
		if rc.AgentID != uuid.Nil {
			fields["agentId"] = rc.AgentID.String()
		}
		if rc.SessionID != "" {
			fields["sessionId"] = rc.SessionID
		}
		for k, v := range rc.Metadata {
			fields[k] = v
		}

		return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
			key := placeholderPattern.FindStringSubmatch(match)[1]
			if value, ok := fields[key]; ok {
				return fmt.Sprintf("%v", value)
			}
			return match
		})
	}
}

type modelSettings struct {
	Name        string  `mapstructure:"name"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"maxTokens"`
}

// mergeModelSettings layers the stored model config JSON over the defaults.
// The model name stays pinned to the record's model column unless the stored
// config explicitly overrides it.
func mergeModelSettings(record *Agent) (providers.Settings, error) {
	merged := map[string]any{
		"name":        record.Model,
		"temperature": defaultTemperature,
		"maxTokens":   defaultMaxTokens,
	}

	if len(record.ModelConfig) > 0 {
		var stored map[string]any
		if err := json.Unmarshal(record.ModelConfig, &stored); err != nil {
			return providers.Settings{}, err
		}
		for k, v := range stored {
			merged[k] = v
		}
		if name, ok := stored["name"]; !ok || name == "" {
			merged["name"] = record.Model
		}
	}

	var ms modelSettings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &ms,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return providers.Settings{}, err
	}
	if err := decoder.Decode(merged); err != nil {
		return providers.Settings{}, err
	}

	return providers.Settings{
		Model:       ms.Name,
		Temperature: ms.Temperature,
		MaxTokens:   ms.MaxTokens,
	}, nil
}
