package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/CaseLink/CL-Backend/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "5050" {
		t.Errorf("expected default port, got %q", cfg.Port)
	}
	if cfg.SessionDuration() != 6*time.Hour {
		t.Errorf("expected default session TTL, got %v", cfg.SessionDuration())
	}
}

func TestLoad_FileValues(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	path := writeConfig(t, `
port: "8080"
session_ttl: 12h
allowed_origins:
  - https://cases.example
rate_limit:
  per_second: 2
  burst: 4
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.SessionDuration() != 12*time.Hour {
		t.Errorf("expected 12h TTL, got %v", cfg.SessionDuration())
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://cases.example" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.RateLimit.PerSecond != 2 || cfg.RateLimit.Burst != 4 {
		t.Errorf("unexpected rate limit: %+v", cfg.RateLimit)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `port: "8080"`)
	t.Setenv("PORT", "9999")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("expected env override, got %q", cfg.Port)
	}
	if cfg.SessionDuration() != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %v", cfg.SessionDuration())
	}
}

func TestSessionDuration_BadValueFallsBack(t *testing.T) {
	cfg := config.Config{SessionTTL: "not-a-duration"}
	if cfg.SessionDuration() != 6*time.Hour {
		t.Errorf("expected fallback TTL, got %v", cfg.SessionDuration())
	}
}
