// Package config provides configuration loading and management for chatmode.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/chatmode/artifact"
)

// Config represents the complete chatmode configuration
type Config struct {
	Generate  GenerateConfig  `yaml:"generate"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	NATS      NATSConfig      `yaml:"nats"`
	Server    ServerConfig    `yaml:"server"`
}

// GenerateConfig holds the default generation options applied when a request
// leaves them unset
type GenerateConfig struct {
	// OutputDir is the directory for generated artifacts, relative to the
	// workspace (default: docs)
	OutputDir string `yaml:"output_dir"`
	// Format is the default document format (markdown or confluence)
	Format string `yaml:"format"`
	// Depth is the default level of detail (overview, subsystem, interface-only)
	Depth string `yaml:"depth"`
	// UserName appears in the attribution footer of generated artifacts
	UserName string `yaml:"user_name"`
}

// WorkspaceConfig configures the workspace settings
type WorkspaceConfig struct {
	// Path is the workspace root path (auto-detected from git if empty)
	Path string `yaml:"path"`
}

// NATSConfig configures the NATS connection for serve mode
type NATSConfig struct {
	// URL is the NATS server URL (empty = use embedded server)
	URL string `yaml:"url"`
	// Embedded indicates whether to use embedded NATS
	Embedded bool `yaml:"embedded"`
}

// ServerConfig configures the serve-mode endpoints
type ServerConfig struct {
	// Subject is the NATS subject serving generation requests
	Subject string `yaml:"subject"`
	// MetricsAddr is the listen address for the Prometheus /metrics endpoint
	// (empty = metrics disabled)
	MetricsAddr string `yaml:"metrics_addr"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Generate: GenerateConfig{
			OutputDir: artifact.DefaultOutputDir,
			Format:    string(artifact.DefaultFormat),
			Depth:     string(artifact.DefaultDepth),
			UserName:  artifact.DefaultUserName,
		},
		Workspace: WorkspaceConfig{
			Path: "", // Auto-detect
		},
		NATS: NATSConfig{
			URL:      "",
			Embedded: true,
		},
		Server: ServerConfig{
			Subject:     "chatmode.architect.request",
			MetricsAddr: ":9090",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Generate.OutputDir == "" {
		return fmt.Errorf("generate.output_dir is required")
	}
	if !artifact.Format(c.Generate.Format).IsValid() {
		return fmt.Errorf("generate.format must be one of: markdown, confluence")
	}
	if !artifact.Depth(c.Generate.Depth).IsValid() {
		return fmt.Errorf("generate.depth must be one of: overview, subsystem, interface-only")
	}
	if c.Server.Subject == "" {
		return fmt.Errorf("server.subject is required")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Generate
	if other.Generate.OutputDir != "" {
		c.Generate.OutputDir = other.Generate.OutputDir
	}
	if other.Generate.Format != "" {
		c.Generate.Format = other.Generate.Format
	}
	if other.Generate.Depth != "" {
		c.Generate.Depth = other.Generate.Depth
	}
	if other.Generate.UserName != "" {
		c.Generate.UserName = other.Generate.UserName
	}

	// Workspace
	if other.Workspace.Path != "" {
		c.Workspace.Path = other.Workspace.Path
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
		c.NATS.Embedded = false
	}

	// Server
	if other.Server.Subject != "" {
		c.Server.Subject = other.Server.Subject
	}
	if other.Server.MetricsAddr != "" {
		c.Server.MetricsAddr = other.Server.MetricsAddr
	}
}
