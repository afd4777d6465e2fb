// Package config handles configuration loading and validation for
// fpanon sessions: which profile to run, where the vault lives, and
// which columns get an explicit type override.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fpvault/fpanon/internal/errors"
)

// Config represents the complete session configuration.
type Config struct {
	Vault   VaultConfig      `yaml:"vault" mapstructure:"vault"`
	Profile ProfileConfig    `yaml:"profile" mapstructure:"profile"`
	Columns []ColumnOverride `yaml:"columns" mapstructure:"columns"`
}

// VaultConfig holds the encrypted mapping store's location and
// credentials.
type VaultConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`
	Password  string `yaml:"password,omitempty" mapstructure:"password"`
	KeyFile   string `yaml:"key_file,omitempty" mapstructure:"key_file"`
	CacheSize int    `yaml:"cache_size,omitempty" mapstructure:"cache_size"`
}

// ProfileConfig selects a named preset (see internal/profiles) and its
// session seed. When Name is not one of the presets (or is empty while
// Mode is set), Mode and the flags below build the profile directly.
type ProfileConfig struct {
	Name                 string `yaml:"name" mapstructure:"name"`
	Mode                 string `yaml:"mode,omitempty" mapstructure:"mode"`
	Seed                 string `yaml:"seed" mapstructure:"seed"`
	PreserveDomain       bool   `yaml:"preserve_domain" mapstructure:"preserve_domain"`
	FullySynthetic       bool   `yaml:"fully_synthetic" mapstructure:"fully_synthetic"`
	ReferentialIntegrity bool   `yaml:"referential_integrity" mapstructure:"referential_integrity"`
}

// ColumnOverride names a column and an explicit data type for it.
// Validate checks that both fields are set; the processor does not read
// these entries, so the classifier still assigns every column's type.
type ColumnOverride struct {
	Column   string `yaml:"column" mapstructure:"column"`
	DataType string `yaml:"data_type" mapstructure:"data_type"`
}

// CLIOverrides represents command-line overrides for config.
type CLIOverrides struct {
	VaultPath *string
	Password  *string
	Profile   *string
	Seed      *string
}

// Load loads configuration from the specified YAML file path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(path, "failed to read config file", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewConfigError(path, "failed to parse config file", err)
	}

	return &cfg, nil
}

// LoadFromViper loads configuration from viper settings, which may
// have been populated from an FPANON_-prefixed environment variable, a
// config file, or CLI flags bound via cobra.
func LoadFromViper() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigError("", "failed to unmarshal config", err)
	}
	return &cfg, nil
}

// ApplyOverrides applies CLI overrides to the configuration.
func (c *Config) ApplyOverrides(overrides CLIOverrides) {
	if overrides.VaultPath != nil {
		c.Vault.Path = *overrides.VaultPath
	}
	if overrides.Password != nil {
		c.Vault.Password = *overrides.Password
	}
	if overrides.Profile != nil {
		c.Profile.Name = *overrides.Profile
	}
	if overrides.Seed != nil {
		c.Profile.Seed = *overrides.Seed
	}
}

// Validate checks the configuration for completeness and correctness.
func (c *Config) Validate() error {
	var errs []string

	if c.Vault.Path == "" {
		errs = append(errs, "vault.path is required")
	}

	if c.Profile.Name == "" && c.Profile.Mode == "" {
		errs = append(errs, "profile.name or profile.mode is required")
	}

	for i, col := range c.Columns {
		if col.Column == "" {
			errs = append(errs, fmt.Sprintf("columns[%d]: column name is required", i))
		}
		if col.DataType == "" {
			errs = append(errs, fmt.Sprintf("columns[%d]: data_type is required", i))
		}
	}

	if len(errs) > 0 {
		return errors.NewConfigError("", strings.Join(errs, "; "), nil)
	}

	return nil
}
