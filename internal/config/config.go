// Package config handles reading and writing .tably/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .tably/config.yaml.
type Config struct {
	Version int           `yaml:"version"`
	Server  ServerConfig  `yaml:"server"`
	Orders  OrdersConfig  `yaml:"orders"`
	Uploads UploadsConfig `yaml:"uploads"`
}

// ServerConfig describes the restaurant service this client talks to.
type ServerConfig struct {
	BaseURL        string `yaml:"base_url"`
	RequestTimeout int    `yaml:"request_timeout"` // seconds
}

// OrdersConfig controls the orders section behaviour.
type OrdersConfig struct {
	PollInterval int `yaml:"poll_interval"` // seconds
}

// UploadsConfig bounds client-side upload validation.
type UploadsConfig struct {
	MaxImageBytes int64 `yaml:"max_image_bytes"`
	MaxLogoBytes  int64 `yaml:"max_logo_bytes"`
}

// configFileName is the path relative to the base directory.
const configDir = ".tably"
const configFile = "config.yaml"

// Dir returns the .tably directory inside base. base is typically the
// user's home directory.
func Dir(base string) string {
	return filepath.Join(base, configDir)
}

// ReadConfig reads .tably/config.yaml from the given base directory.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(base string) (*Config, error) {
	path := filepath.Join(base, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to .tably/config.yaml in the given base directory.
// Creates the .tably/ directory if it does not exist.
func WriteConfig(base string, cfg *Config) error {
	dirPath := filepath.Join(base, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			BaseURL:        "http://localhost:8000",
			RequestTimeout: 30,
		},
		Orders: OrdersConfig{
			PollInterval: 30,
		},
		Uploads: UploadsConfig{
			MaxImageBytes: 5 * 1024 * 1024,
			MaxLogoBytes:  1_000_000,
		},
	}
}
