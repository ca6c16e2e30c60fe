package config

import "os"

// EnvToolsAllowDynamic enables execution of stored custom tool bodies.
const EnvToolsAllowDynamic = "TOOLS_ALLOW_DYNAMIC"

// ToolsConfig contains tool resolution configuration.
//
// AllowDynamic gates whether stored custom tool bodies are interpreted at
// resolution time. When disabled, custom tools fall back to an execute
// operation that echoes its arguments.
type ToolsConfig struct {
	AllowDynamic bool `toml:"allow_dynamic"`
}

// Finalize loads environment overrides.
func (c *ToolsConfig) Finalize() error {
	if v := os.Getenv(EnvToolsAllowDynamic); v != "" {
		c.AllowDynamic = v == "true" || v == "1"
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ToolsConfig) Merge(overlay *ToolsConfig) {
	if overlay.AllowDynamic {
		c.AllowDynamic = true
	}
}
