// Package config loads the tool configuration: defaults, then the optional
// yaml file, then environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration filename looked up next to the working
// directory when no explicit path is given.
const DefaultFile = "gdforge.yml"

// Config holds the tool configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Project is the default project root used when the --project flag is
	// not given.
	Project string `yaml:"project"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Project:  ".",
	}
}

// Load reads the configuration file at path over the defaults. An absent
// file is fine; a malformed one is an error. The GDFORGE_PROJECT environment
// variable overrides the project root last.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if env := os.Getenv("GDFORGE_PROJECT"); env != "" {
		cfg.Project = env
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
	}
	if c.Project == "" {
		return fmt.Errorf("project must not be empty")
	}
	return nil
}
