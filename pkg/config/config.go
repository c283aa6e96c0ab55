// Package config provides configuration management for the bsgs CLI tool
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the main configuration structure
type Config struct {
	Version  string          `json:"version"`
	Defaults DefaultSettings `json:"defaults"`
	Solver   SolverConfig    `json:"solver"`
	UI       UIConfig        `json:"ui"`
}

// DefaultSettings contains default values for common operations
type DefaultSettings struct {
	OutputFormat string `json:"output_format"` // text or json
	Workers      int    `json:"workers"`       // batch worker count
}

// SolverConfig contains guards applied by the CLI before a search starts
type SolverConfig struct {
	MaxModulusBits int  `json:"max_modulus_bits"` // 0 disables the limit
	WarnComposite  bool `json:"warn_composite"`   // log when the modulus is not probably prime
}

// UIConfig contains user interface settings
type UIConfig struct {
	UseColor  bool   `json:"use_color"` // Enable colored output
	Verbosity string `json:"verbosity"` // quiet, normal, verbose
}

// ConfigManager manages configuration loading and saving
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a configuration manager for the default path,
// writing a default config if none exists yet.
func NewConfigManager() (*ConfigManager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewConfigManagerAt(configPath)
}

// NewConfigManagerAt creates a configuration manager backed by configPath
func NewConfigManagerAt(configPath string) (*ConfigManager, error) {
	cm := &ConfigManager{configPath: configPath}

	if err := cm.LoadConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cm.config = DefaultConfig()
		if err := cm.SaveConfig(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return cm, nil
}

// NewDefaultConfigManager returns a manager for configPath holding the
// defaults. The file is neither read nor written.
func NewDefaultConfigManager(configPath string) *ConfigManager {
	return &ConfigManager{config: DefaultConfig(), configPath: configPath}
}

// DefaultPath returns the config file path resolved from the environment
func DefaultPath() (string, error) {
	return getConfigPath()
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			OutputFormat: "text",
			Workers:      4,
		},
		Solver: SolverConfig{
			MaxModulusBits: 96,
			WarnComposite:  true,
		},
		UI: UIConfig{
			UseColor:  true,
			Verbosity: "normal",
		},
	}
}

// Validate checks that every setting holds a usable value
func (c *Config) Validate() error {
	switch c.Defaults.OutputFormat {
	case "text", "json":
	default:
		return fmt.Errorf("defaults.output_format must be text or json, got %q", c.Defaults.OutputFormat)
	}

	if c.Defaults.Workers < 1 {
		return fmt.Errorf("defaults.workers must be at least 1, got %d", c.Defaults.Workers)
	}

	if c.Solver.MaxModulusBits < 0 {
		return fmt.Errorf("solver.max_modulus_bits cannot be negative, got %d", c.Solver.MaxModulusBits)
	}

	switch c.UI.Verbosity {
	case "quiet", "normal", "verbose":
	default:
		return fmt.Errorf("ui.verbosity must be quiet, normal or verbose, got %q", c.UI.Verbosity)
	}

	return nil
}

// LoadConfig loads the configuration from disk
func (cm *ConfigManager) LoadConfig() error {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cm.configPath, err)
	}

	cm.config = config
	return nil
}

// SaveConfig saves the configuration to disk
func (cm *ConfigManager) SaveConfig() error {
	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Reset replaces the configuration with the defaults and saves it
func (cm *ConfigManager) Reset() error {
	cm.config = DefaultConfig()
	return cm.SaveConfig()
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// SetConfig updates the configuration
func (cm *ConfigManager) SetConfig(config *Config) {
	cm.config = config
}

// Path returns the file backing this manager
func (cm *ConfigManager) Path() string {
	return cm.configPath
}

// getConfigPath returns the configuration file path
func getConfigPath() (string, error) {
	// Check for custom config path
	if customPath := os.Getenv("BSGS_CONFIG"); customPath != "" {
		return customPath, nil
	}

	// Use XDG_CONFIG_HOME if set
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "bsgs", "config.json"), nil
	}

	// Default to ~/.config/bsgs/config.json
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "bsgs", "config.json"), nil
}
