// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for reunite.
type Config struct {
	APIBaseURL     string  `mapstructure:"api_base_url" yaml:"api_base_url"`
	RequestTimeout int     `mapstructure:"request_timeout" yaml:"request_timeout"` // seconds
	TileURL        string  `mapstructure:"tile_url" yaml:"tile_url"`
	TileAPIKey     string  `mapstructure:"tile_api_key" yaml:"tile_api_key"`
	DefaultLat     float64 `mapstructure:"default_lat" yaml:"default_lat"`
	DefaultLng     float64 `mapstructure:"default_lng" yaml:"default_lng"`
	LogLevel       string  `mapstructure:"log_level" yaml:"log_level"`
	LogFile        string  `mapstructure:"log_file" yaml:"log_file"`
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	// The backend distributes its tile-service key via .env; honor the same
	// convention so both halves can share one file.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("reunite")

	v.SetDefault("api_base_url", "http://localhost:5000")
	v.SetDefault("request_timeout", 60)
	v.SetDefault("tile_url", "https://tiles.locationiq.com/v3/streets/vector.json")
	v.SetDefault("tile_api_key", "")
	// Hyderabad, the platform's launch city. Map starting point when an item
	// has no coordinates yet.
	v.SetDefault("default_lat", 17.375685)
	v.SetDefault("default_lng", 78.474661)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	// Setup ENV binding with REUNITE_ prefix
	v.SetEnvPrefix("REUNITE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better numeric parsing
	// Note: BindEnv errors are very rare (only invalid key names), but we check them anyway
	for _, key := range []string{
		"api_base_url",
		"request_timeout",
		"tile_url",
		"tile_api_key",
		"default_lat",
		"default_lng",
		"log_level",
		"log_file",
	} {
		envName := "REUNITE_" + strings.ToUpper(key)
		if err := v.BindEnv(key, envName); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		// Need to set config file explicitly for merge
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/reunite/reunite.yml or $XDG_CONFIG_HOME/reunite/reunite.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "reunite", "reunite.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "reunite", "reunite.yml")
}

// ProjectPath returns the project-local config path.
// Returns ./reunite.yml in the current working directory.
func ProjectPath() string {
	return "reunite.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	// Create parent directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Marshal to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Write file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	path := ProjectPath()

	// Marshal to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Write file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
