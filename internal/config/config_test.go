package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.DataSource != DefaultDataSource {
		t.Errorf("DataSource = %q, want %q", cfg.DataSource, DefaultDataSource)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Locale != "en" {
		t.Errorf("Locale = %q, want en", cfg.Locale)
	}
	if !cfg.Compression.Enabled {
		t.Error("Expected compression to be enabled by default")
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, want default", cfg.UserAgent)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("CORS.AllowedOrigins = %v, want [*]", cfg.CORS.AllowedOrigins)
	}

	page := cfg.Page
	if page.Title != "My Oshikatsu Information" {
		t.Errorf("Page.Title = %q", page.Title)
	}
	if page.Description != "A list of my favorite characters and idols." {
		t.Errorf("Page.Description = %q", page.Description)
	}
	if page.LogoPath != "/oshikatsujson.png" || page.LogoSize != 200 {
		t.Errorf("Page logo = %q (%d)", page.LogoPath, page.LogoSize)
	}
	if page.LinkURL != "https://luqmanhadi.com" {
		t.Errorf("Page.LinkURL = %q", page.LinkURL)
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
data_source: /srv/oshi.json
locale: de
server:
  port: 3000
page:
  owner: Alice
cors:
  allowed_origins:
    - https://example.com
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.DataSource != "/srv/oshi.json" {
		t.Errorf("DataSource = %q", cfg.DataSource)
	}
	if cfg.Locale != "de" {
		t.Errorf("Locale = %q", cfg.Locale)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d", cfg.Server.Port)
	}
	if cfg.Page.Owner != "Alice" {
		t.Errorf("Page.Owner = %q", cfg.Page.Owner)
	}
	// Keys absent from the file keep their defaults
	if cfg.Page.Heading != "Oshikatsu Information" {
		t.Errorf("Page.Heading = %q", cfg.Page.Heading)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "https://example.com" {
		t.Errorf("CORS.AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing explicit config file")
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "4242")
	t.Setenv("APP_DATA_SOURCE", "https://example.com/oshi.json")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 4242 {
		t.Errorf("Server.Port = %d, want 4242", cfg.Server.Port)
	}
	if cfg.DataSource != "https://example.com/oshi.json" {
		t.Errorf("DataSource = %q", cfg.DataSource)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_SetsGlobalConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("locale: ja\nlog_level: not-a-level\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if GetConfig() != cfg {
		t.Error("Expected GetConfig to return the loaded config")
	}
	if GetConfig().Locale != "ja" {
		t.Errorf("Locale = %q, want ja", GetConfig().Locale)
	}
}
