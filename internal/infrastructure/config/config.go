// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml), with ${VAR} expansion
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg, err := config.LoadOrEnv()
//	dbPath := cfg.Storage.DatabasePath
//	workers := cfg.Features.Workers
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file LoadOrEnv looks for.
const DefaultPath = "config.yaml"

// Config represents the entire application configuration
type Config struct {
	Features      FeaturesConfig      `yaml:"features"`
	Vendors       VendorsConfig       `yaml:"vendors"`
	Storage       StorageConfig       `yaml:"storage"`
	API           APIConfig           `yaml:"api"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// FeaturesConfig holds feature extraction settings
type FeaturesConfig struct {
	MinOccurrences   int     `yaml:"min_occurrences" env:"RECURSCAN_MIN_OCCURRENCES" envDefault:"3"`
	AmountTolerance  float64 `yaml:"amount_tolerance" env:"RECURSCAN_AMOUNT_TOLERANCE" envDefault:"0.05"`
	NearbyWindowDays int     `yaml:"nearby_window_days" env:"RECURSCAN_NEARBY_WINDOW_DAYS" envDefault:"30"`
	DateCacheSize    int     `yaml:"date_cache_size" env:"RECURSCAN_DATE_CACHE_SIZE" envDefault:"1024"`
	Workers          int     `yaml:"workers" env:"RECURSCAN_WORKERS" envDefault:"4"`
}

// VendorsConfig overrides the vendor keyword lists. Empty lists keep the
// built-in defaults.
type VendorsConfig struct {
	AlwaysRecurring []string `yaml:"always_recurring" env:"RECURSCAN_VENDORS_ALWAYS_RECURRING" envSeparator:","`
	Insurance       []string `yaml:"insurance" env:"RECURSCAN_VENDORS_INSURANCE" envSeparator:","`
	Utility         []string `yaml:"utility" env:"RECURSCAN_VENDORS_UTILITY" envSeparator:","`
	Phone           []string `yaml:"phone" env:"RECURSCAN_VENDORS_PHONE" envSeparator:","`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	DatabasePath string `yaml:"database_path" env:"RECURSCAN_DB_PATH" envDefault:"recurscan.db"`
}

// APIConfig holds HTTP server settings
type APIConfig struct {
	Port           int      `yaml:"port" env:"RECURSCAN_API_PORT" envDefault:"8080"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"RECURSCAN_API_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" envDefault:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" envDefault:"text"`
}

// Defaults returns the configuration with every default applied and no
// environment overrides.
func Defaults() *Config {
	var cfg Config
	// Defaults come from the envDefault tags; an empty environment cannot fail.
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	return &cfg
}

// Load reads and parses the config file. Keys missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${RECURSCAN_DB_PATH})
	expanded := os.ExpandEnv(string(data))

	cfg := Defaults()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() (*Config, error) {
	return LoadOrEnvFrom(DefaultPath)
}

// LoadOrEnvFrom tries to load from path, falls back to environment
// variables when the file does not exist. A file that exists but does not
// parse is an error.
func LoadOrEnvFrom(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	return LoadFromEnv()
}
