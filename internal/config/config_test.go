package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.MaxDocumentBytes != 16<<20 {
		t.Errorf("max_document_bytes = %d, want 16 MB", cfg.Server.MaxDocumentBytes)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("logging = %q/%q, want info/console", cfg.Logging.Level, cfg.Logging.Format)
	}
	if cfg.Storage.SQLitePath != "dahextractor.db" {
		t.Errorf("sqlite_path = %q", cfg.Storage.SQLitePath)
	}
	if cfg.Converter.DefaultFrequency != "122.800" {
		t.Errorf("default_frequency = %q", cfg.Converter.DefaultFrequency)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.ListLimit != 50 {
		t.Errorf("list_limit = %d, want default 50", cfg.Storage.ListLimit)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 9000

[logging]
level = "debug"

[converter]
default_frequency = "118.100"

[converter.city_names]
NZAA = "Auckland"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Converter.DefaultFrequency != "118.100" {
		t.Errorf("default_frequency = %q, want 118.100", cfg.Converter.DefaultFrequency)
	}
	if cfg.Converter.CityNames["NZAA"] != "Auckland" {
		t.Errorf("city_names = %v", cfg.Converter.CityNames)
	}

	// Values the file does not mention keep their defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q, want default", cfg.Server.Host)
	}
	if cfg.Storage.CacheTTLMinutes != 30 {
		t.Errorf("cache_ttl_minutes = %d, want default 30", cfg.Storage.CacheTTLMinutes)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad port", body: "[server]\nport = -1\n"},
		{name: "bad document limit", body: "[server]\nmax_document_bytes = 0\n"},
		{name: "bad list limit", body: "[storage]\nlist_limit = 0\n"},
		{name: "malformed toml", body: "[server\nport=8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}
