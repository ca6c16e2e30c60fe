package config_test

import (
	"testing"
	"time"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/config"
)

func TestProvidersConfigFinalize_Defaults(t *testing.T) {
	var cfg config.ProvidersConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.TimeoutDuration() != 120*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 120s", cfg.TimeoutDuration())
	}
	if cfg.UseLiteLLM {
		t.Error("UseLiteLLM defaults to false")
	}
}

func TestProvidersConfigEnvOverride(t *testing.T) {
	t.Setenv(config.EnvOpenAIAPIKey, "sk-test")
	t.Setenv(config.EnvGoogleAPIKey, "g-test")
	t.Setenv(config.EnvUseLiteLLM, "true")
	t.Setenv(config.EnvLiteLLMBaseURL, "http://litellm:4000")

	var cfg config.ProvidersConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("OpenAI.APIKey = %q, want sk-test", cfg.OpenAI.APIKey)
	}
	if cfg.Google.APIKey != "g-test" {
		t.Errorf("Google.APIKey = %q, want g-test", cfg.Google.APIKey)
	}
	if !cfg.UseLiteLLM {
		t.Error("UseLiteLLM = false, want true")
	}
	if cfg.LiteLLM.BaseURL != "http://litellm:4000" {
		t.Errorf("LiteLLM.BaseURL = %q", cfg.LiteLLM.BaseURL)
	}
}

func TestProvidersConfigMerge(t *testing.T) {
	base := config.ProvidersConfig{
		Timeout: "120s",
		OpenAI:  config.VendorConfig{APIKey: "base-key"},
	}
	overlay := config.ProvidersConfig{
		UseLiteLLM: true,
		Anthropic:  config.VendorConfig{APIKey: "overlay-key"},
	}

	base.Merge(&overlay)

	if !base.UseLiteLLM {
		t.Error("UseLiteLLM = false, want true after merge")
	}
	if base.OpenAI.APIKey != "base-key" {
		t.Errorf("OpenAI.APIKey = %q, want base value kept", base.OpenAI.APIKey)
	}
	if base.Anthropic.APIKey != "overlay-key" {
		t.Errorf("Anthropic.APIKey = %q, want overlay-key", base.Anthropic.APIKey)
	}
}

func TestToolsConfigFinalize(t *testing.T) {
	t.Setenv(config.EnvToolsAllowDynamic, "1")

	var cfg config.ToolsConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if !cfg.AllowDynamic {
		t.Error("AllowDynamic = false, want true from env")
	}
}

func TestCORSConfigFinalize_Defaults(t *testing.T) {
	var cfg config.CORSConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if len(cfg.Methods) == 0 || len(cfg.Headers) == 0 {
		t.Errorf("methods/headers = %v/%v, want defaults", cfg.Methods, cfg.Headers)
	}
	if len(cfg.Origins) != 0 {
		t.Errorf("Origins = %v, want empty default", cfg.Origins)
	}
}

func TestCORSConfigEnvOverride(t *testing.T) {
	t.Setenv(config.EnvCORSOrigins, "https://a.example.com, https://b.example.com")
	t.Setenv(config.EnvCORSCredentials, "true")

	var cfg config.CORSConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if len(cfg.Origins) != 2 || cfg.Origins[1] != "https://b.example.com" {
		t.Errorf("Origins = %v, want two trimmed entries", cfg.Origins)
	}
	if !cfg.Credentials {
		t.Error("Credentials = false, want true")
	}
}
