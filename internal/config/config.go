package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level budgetbook.yaml configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Display DisplayConfig `yaml:"display"`
}

// StoreConfig locates the persistent key-value store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// DisplayConfig controls how amounts are rendered.
type DisplayConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"`
}

// DefaultPath is where Load looks when no config flag is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "budgetbook", "budgetbook.yaml")
}

// Default returns a Config with sensible defaults: the store lives under the
// XDG data home and amounts render with a dollar sign.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Path: filepath.Join(xdg.DataHome, "budgetbook", "budgetbook.db"),
		},
		Display: DisplayConfig{
			CurrencySymbol: "$",
		},
	}
}

// Load reads a budgetbook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = Default().Store.Path
	}
	if cfg.Display.CurrencySymbol == "" {
		cfg.Display.CurrencySymbol = Default().Display.CurrencySymbol
	}
	return &cfg, nil
}

// LoadOrDefault reads the config at path, falling back to Default when the
// file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file, creating parent directories.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
