package providers_test

import (
	"testing"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/config"
	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/providers"
)

func TestSelect_BareNames(t *testing.T) {
	cfg := &config.ProvidersConfig{}

	tests := []struct {
		model string
		want  providers.Kind
	}{
		{"gpt-4o", providers.KindOpenAI},
		{"gpt-4o-mini", providers.KindOpenAI},
		{"claude-3-opus", providers.KindAnthropic},
		{"claude-3-5-sonnet-latest", providers.KindAnthropic},
		{"gemini-1.5-pro", providers.KindGoogle},
		{"llama-3-70b", providers.KindLiteLLM},
		{"mixtral-8x7b", providers.KindLiteLLM},
		{"mistral-large", providers.KindLiteLLM},
		{"some-unknown-model", providers.KindOpenAI},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			if got := providers.Select(tt.model, cfg); got != tt.want {
				t.Errorf("Select(%q) = %q, want %q", tt.model, got, tt.want)
			}
		})
	}
}

func TestSelect_VendorPrefixesRouteToGateway(t *testing.T) {
	cfg := &config.ProvidersConfig{}

	tests := []string{
		"anthropic/claude-3-opus",
		"gemini/gemini-pro",
		"cohere/command-r",
		"replicate/llama-2",
		"together_ai/mixtral",
		"azure/gpt-4",
		"openrouter/auto",
	}

	for _, model := range tests {
		t.Run(model, func(t *testing.T) {
			if got := providers.Select(model, cfg); got != providers.KindLiteLLM {
				t.Errorf("Select(%q) = %q, want %q", model, got, providers.KindLiteLLM)
			}
		})
	}
}

func TestSelect_GatewayOptInWinsOverEverything(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ProvidersConfig
	}{
		{"flag set", config.ProvidersConfig{UseLiteLLM: true}},
		{"base url set", config.ProvidersConfig{LiteLLM: config.VendorConfig{BaseURL: "http://gateway:4000"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, model := range []string{"gpt-4o", "claude-3-opus", "gemini-1.5-pro"} {
				if got := providers.Select(model, &tt.cfg); got != providers.KindLiteLLM {
					t.Errorf("Select(%q) = %q, want %q", model, got, providers.KindLiteLLM)
				}
			}
		})
	}
}

func TestNew_ReturnsMatchingKind(t *testing.T) {
	cfg := &config.ProvidersConfig{Timeout: "5s"}

	for _, kind := range []providers.Kind{
		providers.KindOpenAI,
		providers.KindAnthropic,
		providers.KindGoogle,
		providers.KindLiteLLM,
	} {
		t.Run(string(kind), func(t *testing.T) {
			client := providers.New(kind, cfg, testLogger())
			if client.Kind() != kind {
				t.Errorf("Kind() = %q, want %q", client.Kind(), kind)
			}
		})
	}
}
