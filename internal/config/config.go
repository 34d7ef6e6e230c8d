package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logging   LoggingConfig   `toml:"logging"`
	Storage   StorageConfig   `toml:"storage"`
	Converter ConverterConfig `toml:"converter"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Host               string   `toml:"host"`
	Port               int      `toml:"port"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
	MaxDocumentBytes   int64    `toml:"max_document_bytes"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, console
}

// StorageConfig represents the conversion-history storage configuration
type StorageConfig struct {
	SQLitePath      string `toml:"sqlite_path"`
	CacheTTLMinutes int    `toml:"cache_ttl_minutes"`
	ListLimit       int    `toml:"list_limit"`
}

// ConverterConfig represents the VATGlasses converter configuration
type ConverterConfig struct {
	DefaultFrequency string `toml:"default_frequency"`
	// Seed-table overrides; merged over the built-in defaults.
	TypeMappings     map[string]string `toml:"type_mappings"`
	CityNames        map[string]string `toml:"city_names"`
	PositionPrefixes map[string]string `toml:"position_prefixes"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8080,
			CORSAllowedOrigins: []string{"*"},
			MaxDocumentBytes:   16 << 20, // 16 MB of extracted text
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Storage: StorageConfig{
			SQLitePath:      "dahextractor.db",
			CacheTTLMinutes: 30,
			ListLimit:       50,
		},
		Converter: ConverterConfig{
			DefaultFrequency: "122.800",
		},
	}
}

// Load loads the configuration from the given TOML file, applying defaults
// for any values not present. A missing file is not an error; defaults are
// returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the configuration for values we cannot run with
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.MaxDocumentBytes <= 0 {
		return fmt.Errorf("invalid max_document_bytes: %d", c.Server.MaxDocumentBytes)
	}
	if c.Storage.ListLimit <= 0 {
		return fmt.Errorf("invalid list_limit: %d", c.Storage.ListLimit)
	}
	return nil
}
