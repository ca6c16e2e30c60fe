// Package providers selects an LLM vendor backend for a model name and
// exposes a uniform completion operation over each vendor's HTTP API.
package providers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/config"
)

// Kind identifies a vendor backend.
type Kind string

// Supported vendor backends.
const (
	KindOpenAI    Kind = "openai"
	KindAnthropic Kind = "anthropic"
	KindGoogle    Kind = "google"
	KindLiteLLM   Kind = "litellm"
)

// Message is one entry of a run's conversation history.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

// ToolCall is a vendor-neutral function call extracted from a completion.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ToolDoc describes one tool in the vendor-neutral function document form.
type ToolDoc struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Settings carries the resolved model configuration for one request.
type Settings struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// Request is a single completion request: rendered instructions, message
// history, model settings, and optional per-request credential overrides.
type Request struct {
	Instructions string
	Messages     []Message
	Settings     Settings
	Tools        []ToolDoc
	APIKey       string
	BaseURL      string
}

// Completion is the extracted result of one vendor response.
type Completion struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// StreamChunk is one incremental decode of a vendor's event stream.
type StreamChunk struct {
	Content string
	Done    bool
	Err     error
}

// Client issues completion requests against one vendor backend. A single
// request, single vendor, single attempt per call: clients do not retry and
// do not fall back to another vendor.
type Client interface {
	Kind() Kind
	Complete(ctx context.Context, req Request) (*Completion, error)
	Stream(ctx context.Context, req Request) (<-chan StreamChunk, error)
}

// litellmPrefixes are vendor-prefixed model names that always route through
// the unified gateway.
var litellmPrefixes = []string{
	"anthropic/", "gemini/", "cohere/", "replicate/", "together_ai/", "azure/", "openrouter/",
}

// Select decides which vendor backend serves the given model name.
// Precedence: gateway opt-in, vendor-prefixed names, bare-name substring
// match, then the OpenAI default.
func Select(model string, cfg *config.ProvidersConfig) Kind {
	if cfg.UseLiteLLM || cfg.LiteLLM.BaseURL != "" {
		return KindLiteLLM
	}

	for _, prefix := range litellmPrefixes {
		if strings.HasPrefix(model, prefix) {
			return KindLiteLLM
		}
	}

	switch {
	case strings.Contains(model, "gpt"):
		return KindOpenAI
	case strings.Contains(model, "claude"):
		return KindAnthropic
	case strings.Contains(model, "gemini"):
		return KindGoogle
	case strings.Contains(model, "llama"),
		strings.Contains(model, "mixtral"),
		strings.Contains(model, "mistral"):
		return KindLiteLLM
	}

	return KindOpenAI
}

// New constructs the client for a vendor backend from provider configuration.
func New(kind Kind, cfg *config.ProvidersConfig, logger *slog.Logger) Client {
	httpClient := &http.Client{Timeout: cfg.TimeoutDuration()}

	switch kind {
	case KindAnthropic:
		return &anthropicClient{
			apiKey:  cfg.Anthropic.APIKey,
			baseURL: defaultString(cfg.Anthropic.BaseURL, anthropicDefaultBaseURL),
			http:    httpClient,
			logger:  logger.With("provider", KindAnthropic),
		}
	case KindGoogle:
		return &googleClient{
			apiKey:  cfg.Google.APIKey,
			baseURL: defaultString(cfg.Google.BaseURL, googleDefaultBaseURL),
			http:    httpClient,
			logger:  logger.With("provider", KindGoogle),
		}
	case KindLiteLLM:
		return newLiteLLM(openAIClient{
			kind:    KindLiteLLM,
			apiKey:  cfg.LiteLLM.APIKey,
			baseURL: defaultString(cfg.LiteLLM.BaseURL, litellmDefaultBaseURL),
			http:    httpClient,
			logger:  logger.With("provider", KindLiteLLM),
		})
	default:
		return &openAIClient{
			kind:    KindOpenAI,
			apiKey:  cfg.OpenAI.APIKey,
			baseURL: defaultString(cfg.OpenAI.BaseURL, openAIDefaultBaseURL),
			http:    httpClient,
			logger:  logger.With("provider", KindOpenAI),
		}
	}
}

func defaultString(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
