package config

import (
	"fmt"
	"os"
	"time"
)

// Environment variable names for provider configuration.
const (
	EnvUseLiteLLM       = "USE_LITELLM"
	EnvLiteLLMBaseURL   = "LITELLM_BASE_URL"
	EnvLiteLLMAPIKey    = "LITELLM_API_KEY"
	EnvOpenAIAPIKey     = "OPENAI_API_KEY"
	EnvOpenAIBaseURL    = "OPENAI_BASE_URL"
	EnvAnthropicAPIKey  = "ANTHROPIC_API_KEY"
	EnvAnthropicBaseURL = "ANTHROPIC_BASE_URL"
	EnvGoogleAPIKey     = "GEMINI_API_KEY"
	EnvGoogleBaseURL    = "GEMINI_BASE_URL"
	EnvProvidersTimeout = "PROVIDERS_TIMEOUT"
)

// VendorConfig holds per-vendor credentials and endpoint overrides.
type VendorConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

func (v *VendorConfig) merge(overlay *VendorConfig) {
	if overlay.APIKey != "" {
		v.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		v.BaseURL = overlay.BaseURL
	}
}

// ProvidersConfig contains LLM provider selection and credential configuration.
// When UseLiteLLM is set or a LiteLLM base URL is configured, all completions
// route through the unified gateway regardless of model name.
type ProvidersConfig struct {
	UseLiteLLM bool         `toml:"use_litellm"`
	LiteLLM    VendorConfig `toml:"litellm"`
	OpenAI     VendorConfig `toml:"openai"`
	Anthropic  VendorConfig `toml:"anthropic"`
	Google     VendorConfig `toml:"google"`
	Timeout    string       `toml:"timeout"`
}

// TimeoutDuration parses and returns the vendor HTTP timeout as a time.Duration.
func (c *ProvidersConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *ProvidersConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ProvidersConfig) Merge(overlay *ProvidersConfig) {
	if overlay.UseLiteLLM {
		c.UseLiteLLM = true
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	c.LiteLLM.merge(&overlay.LiteLLM)
	c.OpenAI.merge(&overlay.OpenAI)
	c.Anthropic.merge(&overlay.Anthropic)
	c.Google.merge(&overlay.Google)
}

func (c *ProvidersConfig) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "120s"
	}
}

func (c *ProvidersConfig) loadEnv() {
	if v := os.Getenv(EnvUseLiteLLM); v != "" {
		c.UseLiteLLM = v == "true" || v == "1"
	}
	if v := os.Getenv(EnvLiteLLMBaseURL); v != "" {
		c.LiteLLM.BaseURL = v
	}
	if v := os.Getenv(EnvLiteLLMAPIKey); v != "" {
		c.LiteLLM.APIKey = v
	}
	if v := os.Getenv(EnvOpenAIAPIKey); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv(EnvOpenAIBaseURL); v != "" {
		c.OpenAI.BaseURL = v
	}
	if v := os.Getenv(EnvAnthropicAPIKey); v != "" {
		c.Anthropic.APIKey = v
	}
	if v := os.Getenv(EnvAnthropicBaseURL); v != "" {
		c.Anthropic.BaseURL = v
	}
	if v := os.Getenv(EnvGoogleAPIKey); v != "" {
		c.Google.APIKey = v
	}
	if v := os.Getenv(EnvGoogleBaseURL); v != "" {
		c.Google.BaseURL = v
	}
	if v := os.Getenv(EnvProvidersTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *ProvidersConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
