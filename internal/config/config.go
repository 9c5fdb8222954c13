// Package config loads service configuration from an optional YAML file
// overridden by environment variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds everything the service needs to start.
type Config struct {
	Addr            string   `mapstructure:"addr"`
	DBPath          string   `mapstructure:"db_path"`
	PrefsPath       string   `mapstructure:"prefs_path"`
	AnthropicAPIKey string   `mapstructure:"anthropic_api_key"`
	Model           string   `mapstructure:"model"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:        ":8080",
		DBPath:      defaultDataPath("tasks.db"),
		PrefsPath:   defaultDataPath("prefs.yaml"),
		CORSOrigins: []string{"*"},
	}
}

// Load builds the configuration: defaults, then the config file if present,
// then environment variables on top.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := loadFile(ConfigPath(), cfg); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	if v := os.Getenv("TASKDECK_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("TASKDECK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TASKDECK_PREFS"); v != "" {
		cfg.PrefsPath = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := os.Getenv("TASKDECK_MODEL"); v != "" {
		cfg.Model = v
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".taskdeck", "config.yaml")
	}
	return filepath.Join(home, ".taskdeck", "config.yaml")
}

func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".taskdeck", name)
	}
	return filepath.Join(home, ".taskdeck", name)
}
