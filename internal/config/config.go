// Package config loads impgraph's configuration: root packages to scan,
// scanning flags, cache location, and logging verbosity, from a YAML file
// layered with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for impgraph.
type Config struct {
	// RootPackages lists the dotted package names (and their directories,
	// see RootDirs) the scanner discovers and walks.
	RootPackages []string `yaml:"root_packages" env:"IMPGRAPH_ROOT_PACKAGES"`

	// RootDirs gives the on-disk directory for each entry in
	// RootPackages, by the same index.
	RootDirs []string `yaml:"root_dirs" env:"IMPGRAPH_ROOT_DIRS"`

	IncludeExternalPackages    bool `yaml:"include_external_packages" env:"IMPGRAPH_INCLUDE_EXTERNAL"`
	ExcludeTypeCheckingImports bool `yaml:"exclude_type_checking_imports" env:"IMPGRAPH_EXCLUDE_TYPE_CHECKING"`

	CachePath      string `yaml:"cache_path" env:"IMPGRAPH_CACHE_PATH"`
	IgnoreFileName string `yaml:"ignore_file_name" env:"IMPGRAPH_IGNORE_FILE"`

	Verbose bool `yaml:"verbose" env:"IMPGRAPH_VERBOSE"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		IncludeExternalPackages:    true,
		ExcludeTypeCheckingImports: false,
		CachePath:                  ".impgraph-cache.json",
		IgnoreFileName:             ".impgraphignore",
		Verbose:                    false,
	}
}

// configFilePath returns the default config file path.
func configFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".impgraph/config.yaml"
	}
	return filepath.Join(home, ".impgraph", "config.yaml")
}

// DefaultConfigPath returns the default config file path, exported so
// callers (the init wizard, diagnostics) can display it.
func DefaultConfigPath() string {
	return configFilePath()
}

// Load reads configuration from the default YAML path and applies
// environment variable overrides.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := configFilePath()
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific YAML file path.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IMPGRAPH_ROOT_PACKAGES"); v != "" {
		cfg.RootPackages = splitList(v)
	}
	if v := os.Getenv("IMPGRAPH_ROOT_DIRS"); v != "" {
		cfg.RootDirs = splitList(v)
	}
	if v := os.Getenv("IMPGRAPH_INCLUDE_EXTERNAL"); v != "" {
		cfg.IncludeExternalPackages = parseBool(v)
	}
	if v := os.Getenv("IMPGRAPH_EXCLUDE_TYPE_CHECKING"); v != "" {
		cfg.ExcludeTypeCheckingImports = parseBool(v)
	}
	if v := os.Getenv("IMPGRAPH_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}
	if v := os.Getenv("IMPGRAPH_IGNORE_FILE"); v != "" {
		cfg.IgnoreFileName = v
	}
	if v := os.Getenv("IMPGRAPH_VERBOSE"); v != "" {
		cfg.Verbose = parseBool(v)
	}
}

// Validate checks that the configuration has valid required fields.
func (c *Config) Validate() error {
	if len(c.RootPackages) == 0 {
		return fmt.Errorf("at least one root package is required")
	}
	if len(c.RootDirs) != len(c.RootPackages) {
		return fmt.Errorf("root_dirs must have one entry per root_packages entry (got %d dirs for %d packages)", len(c.RootDirs), len(c.RootPackages))
	}
	if c.CachePath == "" {
		return fmt.Errorf("cache_path is required")
	}
	return nil
}

// Save writes the config to path as YAML, creating parent directories as
// needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory %s: %w", dir, err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

func parseBool(v string) bool {
	return v == "true" || v == "1" || v == "yes"
}
