// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable Load reads the config path
// from.
const EnvironmentVariable = "BUREAU_TERM_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the configuration for bureau-term.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Keys configures where signing keypairs live.
	Keys KeysConfig `yaml:"keys"`

	// Digest configures the hash command.
	Digest DigestConfig `yaml:"digest"`

	// Frame configures the pack command.
	Frame FrameConfig `yaml:"frame"`

	// Output configures how decoded values are printed.
	Output OutputConfig `yaml:"output"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Keys     *KeysConfig   `yaml:"keys,omitempty"`
	Digest   *DigestConfig `yaml:"digest,omitempty"`
	Frame    *FrameConfig  `yaml:"frame,omitempty"`
	Output   *OutputConfig `yaml:"output,omitempty"`
	LogLevel string        `yaml:"log_level,omitempty"`
}

// KeysConfig configures signing key storage.
type KeysConfig struct {
	// Directory holds term-signing-key and term-signing-key.pub.
	// Default: ${HOME}/.cache/bureau/keys
	Directory string `yaml:"directory"`
}

// DigestConfig configures content hashing.
type DigestConfig struct {
	// Algorithm is sha256, blake3, or blake2b.
	// Default: sha256
	Algorithm string `yaml:"algorithm"`
}

// FrameConfig configures transport framing.
type FrameConfig struct {
	// Compression is none, lz4, zstd, or auto (probe each payload).
	// Default: auto
	Compression string `yaml:"compression"`
}

// OutputConfig configures rendering of decoded values.
type OutputConfig struct {
	// Bytes is text (UTF-8 byte strings as JSON strings) or hex.
	// Default: text
	Bytes string `yaml:"bytes"`

	// Compact disables JSON indentation.
	// Default: false (development), true (production)
	Compact bool `yaml:"compact"`
}

var (
	digestAlgorithms = []string{"sha256", "blake3", "blake2b"}
	compressions     = []string{"none", "lz4", "zstd", "auto"}
	bytesModes       = []string{"text", "hex"}
	logLevels        = []string{"debug", "info", "warn", "error"}
)

// Default returns the default configuration. bureau-term runs with
// these values when neither --config nor BUREAU_TERM_CONFIG is given.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Environment: Development,
		Keys: KeysConfig{
			Directory: filepath.Join(homeDir, ".cache", "bureau", "keys"),
		},
		Digest: DigestConfig{
			Algorithm: "sha256",
		},
		Frame: FrameConfig{
			Compression: "auto",
		},
		Output: OutputConfig{
			Bytes: "text",
		},
		LogLevel: "info",
	}
}

// Load loads configuration from the file named by BUREAU_TERM_CONFIG.
// There is no discovery: if the variable is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables
// do not override config values; the only expansion performed is
// ${HOME} and similar variables inside path fields.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults: machine-readable output, quieter logs.
		if overrides == nil {
			overrides = &ConfigOverrides{
				Output:   &OutputConfig{Compact: true},
				LogLevel: "warn",
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Keys != nil && overrides.Keys.Directory != "" {
		c.Keys.Directory = overrides.Keys.Directory
	}

	if overrides.Digest != nil && overrides.Digest.Algorithm != "" {
		c.Digest.Algorithm = overrides.Digest.Algorithm
	}

	if overrides.Frame != nil && overrides.Frame.Compression != "" {
		c.Frame.Compression = overrides.Frame.Compression
	}

	if overrides.Output != nil {
		if overrides.Output.Bytes != "" {
			c.Output.Bytes = overrides.Output.Bytes
		}
		// Compact is a bool, so we always apply it from overrides.
		c.Output.Compact = overrides.Output.Compact
	}

	if overrides.LogLevel != "" {
		c.LogLevel = overrides.LogLevel
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Keys.Directory = expandVars(c.Keys.Directory, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Keys.Directory == "" {
		errs = append(errs, fmt.Errorf("keys.directory is required"))
	}

	if !slices.Contains(digestAlgorithms, c.Digest.Algorithm) {
		errs = append(errs, fmt.Errorf("digest.algorithm must be one of: %v", digestAlgorithms))
	}
	if !slices.Contains(compressions, c.Frame.Compression) {
		errs = append(errs, fmt.Errorf("frame.compression must be one of: %v", compressions))
	}
	if !slices.Contains(bytesModes, c.Output.Bytes) {
		errs = append(errs, fmt.Errorf("output.bytes must be one of: %v", bytesModes))
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level must be one of: %v", logLevels))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
