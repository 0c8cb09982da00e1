// Package config handles pxbridge server configuration.
package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the Statistics Norway PxWeb v2 API.
	DefaultBaseURL = "https://data.ssb.no/api/pxwebapi/v2"

	// DefaultPort is the port the pxbridge HTTP server binds to.
	DefaultPort = "3000"
)

// Config holds the process-wide server configuration.
// It is resolved once at startup and read-only afterwards.
type Config struct {
	// BaseURL is the upstream PxWeb v2 API base URL.
	BaseURL string `yaml:"base_url"`

	// Port is the TCP port the HTTP server binds to.
	Port string `yaml:"port"`

	// TelemetryEnabled turns on otel metrics and the /metrics endpoint.
	TelemetryEnabled bool `yaml:"telemetry_enabled"`
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Port:    DefaultPort,
	}
}

// LoadFile reads a YAML configuration file from the given filesystem and
// merges it over the defaults. Fields absent from the file keep their
// default values.
func LoadFile(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %s: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL %s: scheme must be http or https", c.BaseURL)
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %s: must be an integer between 1 and 65535", c.Port)
	}

	return nil
}
