package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/piwi3910/WardView/internal/model"
)

// Environment overrides, applied after the config file is read.
const (
	EnvLogLevel = "WARDVIEW_LOG_LEVEL"
	EnvSeed     = "WARDVIEW_SEED"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.wardview/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".wardview")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
// Fields missing from the file keep their defaults.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return model.AppConfig{}, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if config.RecentExports == nil {
		config.RecentExports = []string{}
	}
	return config, nil
}

// ApplyEnv overrides config fields from WARDVIEW_* environment variables.
// An unparsable seed is reported and leaves the config unchanged.
func ApplyEnv(config *model.AppConfig) error {
	if level := os.Getenv(EnvLogLevel); level != "" {
		config.LogLevel = level
	}
	if seed := os.Getenv(EnvSeed); seed != "" {
		v, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSeed, seed, err)
		}
		config.Seed = v
	}
	return nil
}
