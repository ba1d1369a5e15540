// Package config provides configuration management for the trishare CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the persisted configuration.
type Config struct {
	Version  string          `json:"version"`
	Defaults DefaultSettings `json:"defaults"`
	Security SecurityConfig  `json:"security"`
	UI       UIConfig        `json:"ui"`
	Storage  StorageConfig   `json:"storage"`
}

// DefaultSettings contains default values for common operations.
type DefaultSettings struct {
	OutputFormat string `json:"output_format"` // json or text
	UseMnemonic  bool   `json:"use_mnemonic"`  // prefer mnemonic secret entry
}

// SecurityConfig contains security-related settings.
type SecurityConfig struct {
	MinPassphraseLength int  `json:"min_passphrase_length"`
	WipeMemory          bool `json:"wipe_memory"`
	AutoVerify          bool `json:"auto_verify"` // verify shares right after split
}

// UIConfig contains user interface settings.
type UIConfig struct {
	UseColor  bool   `json:"use_color"`
	Verbosity string `json:"verbosity"` // quiet, normal, verbose
}

// StorageConfig contains share-store settings.
type StorageConfig struct {
	StorePath      string `json:"store_path"`
	AutoSave       bool   `json:"auto_save"`
	EncryptStorage bool   `json:"encrypt_storage"`
}

// Manager loads and persists the configuration file.
type Manager struct {
	config     *Config
	configPath string
}

// NewManager creates a manager, loading the existing config or writing the
// defaults on first run.
func NewManager() (*Manager, error) {
	configPath, err := configPath()
	if err != nil {
		return nil, err
	}

	m := &Manager{configPath: configPath}
	if err := m.Load(); err != nil {
		m.config = Default()
		if err := m.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return m, nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			OutputFormat: "text",
			UseMnemonic:  false,
		},
		Security: SecurityConfig{
			MinPassphraseLength: 8,
			WipeMemory:          true,
			AutoVerify:          true,
		},
		UI: UIConfig{
			UseColor:  true,
			Verbosity: "normal",
		},
		Storage: StorageConfig{
			StorePath:      "~/.trishare/shares",
			AutoSave:       false,
			EncryptStorage: false,
		},
	}
}

// Load reads the configuration from disk.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	m.config = config
	return nil
}

// Save writes the configuration to disk.
func (m *Manager) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	return m.config
}

// Set replaces the configuration in memory; call Save to persist it.
func (m *Manager) Set(config *Config) {
	m.config = config
}

// StorePath resolves the configured share-store path, expanding a leading ~.
func (m *Manager) StorePath() (string, error) {
	path := m.config.Storage.StorePath
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return path, nil
}

// configPath returns the configuration file location. TRISHARE_CONFIG wins,
// then XDG_CONFIG_HOME, then ~/.config/trishare/config.json.
func configPath() (string, error) {
	if custom := os.Getenv("TRISHARE_CONFIG"); custom != "" {
		return custom, nil
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "trishare", "config.json"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "trishare", "config.json"), nil
}
