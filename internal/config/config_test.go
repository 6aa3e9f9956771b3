package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}
	if cfg.AppPort != 3000 {
		t.Errorf("expected default AppPort 3000, got %d", cfg.AppPort)
	}
	if cfg.APIBaseURL != "http://localhost:8080/api" {
		t.Errorf("expected default APIBaseURL, got %s", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Errorf("expected default APITimeout 10s, got %v", cfg.APITimeout)
	}
	if cfg.Backend != "jpa" {
		t.Errorf("expected default Backend 'jpa', got %s", cfg.Backend)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("unexpected log defaults: %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://users.example.com/api")
	t.Setenv("API_TIMEOUT", "2500ms")
	t.Setenv("BACKEND", "mybatis")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.APIBaseURL != "https://users.example.com/api" {
		t.Errorf("APIBaseURL = %s", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 2500*time.Millisecond {
		t.Errorf("APITimeout = %v", cfg.APITimeout)
	}
	if cfg.Backend != "mybatis" {
		t.Errorf("Backend = %s", cfg.Backend)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=4100\nLOG_FORMAT=text\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// Registered so the values loaded from the file are cleared afterwards.
	t.Setenv("APP_PORT", "")
	t.Setenv("LOG_FORMAT", "")
	os.Unsetenv("APP_PORT")
	os.Unsetenv("LOG_FORMAT")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.AppPort != 4100 {
		t.Errorf("AppPort = %d, want 4100", cfg.AppPort)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %s, want text", cfg.LogFormat)
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("BACKEND", "hibernate")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error for invalid backend, got nil")
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error for invalid duration, got nil")
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return true")
	}

	cfg.AppEnv = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return false")
	}
}
