package config

import (
	"os"
	"strings"
)

// Environment variable names for CORS configuration.
const (
	EnvCORSOrigins     = "CORS_ORIGINS"
	EnvCORSMethods     = "CORS_METHODS"
	EnvCORSHeaders     = "CORS_HEADERS"
	EnvCORSCredentials = "CORS_CREDENTIALS"
)

// CORSConfig contains cross-origin resource sharing configuration.
type CORSConfig struct {
	Origins     []string `toml:"origins"`
	Methods     []string `toml:"methods"`
	Headers     []string `toml:"headers"`
	Credentials bool     `toml:"credentials"`
}

// Finalize applies defaults and loads environment overrides.
func (c *CORSConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	if len(overlay.Origins) > 0 {
		c.Origins = overlay.Origins
	}
	if len(overlay.Methods) > 0 {
		c.Methods = overlay.Methods
	}
	if len(overlay.Headers) > 0 {
		c.Headers = overlay.Headers
	}
	if overlay.Credentials {
		c.Credentials = true
	}
}

func (c *CORSConfig) loadDefaults() {
	if len(c.Methods) == 0 {
		c.Methods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(c.Headers) == 0 {
		c.Headers = []string{"Content-Type", "Authorization"}
	}
}

func (c *CORSConfig) loadEnv() {
	if v := os.Getenv(EnvCORSOrigins); v != "" {
		c.Origins = splitList(v)
	}
	if v := os.Getenv(EnvCORSMethods); v != "" {
		c.Methods = splitList(v)
	}
	if v := os.Getenv(EnvCORSHeaders); v != "" {
		c.Headers = splitList(v)
	}
	if v := os.Getenv(EnvCORSCredentials); v != "" {
		c.Credentials = v == "true" || v == "1"
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
