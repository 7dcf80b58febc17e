package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesYAMLAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
app:
  name: peladeiro-test
  environment: production
  port: 8081
api:
  base_url: http://api.internal:5001
  timeout: 10s
`)
	t.Setenv("APP_SECRET_KEY", "secret")
	t.Setenv("PELADA_API_BASE_URL", "https://api.example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Name != "peladeiro-test" || cfg.App.Port != 8081 {
		t.Fatalf("unexpected app section: %+v", cfg.App)
	}
	if cfg.API.BaseURL != "https://api.example.com" {
		t.Fatalf("expected env override of base url, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Fatalf("expected yaml timeout, got %s", cfg.API.Timeout)
	}
	if cfg.API.UploadTimeout != 30*time.Second {
		t.Fatalf("expected default upload timeout, got %s", cfg.API.UploadTimeout)
	}
	if cfg.App.SecretKey != "secret" {
		t.Fatalf("expected secret from environment")
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv("APP_SECRET_KEY", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session.MaxRecentVotes != 5 {
		t.Fatalf("expected 5 recent votes, got %d", cfg.Session.MaxRecentVotes)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development environment by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing secret", func(c *Config) { c.App.SecretKey = "" }, "APP_SECRET_KEY"},
		{"bad base url", func(c *Config) { c.API.BaseURL = "api.local" }, "http(s)"},
		{"zero timeout", func(c *Config) { c.API.MediaTimeout = 0 }, "timeouts"},
		{"bad cron", func(c *Config) {
			c.Features.EnableHealthProbe = true
			c.Scheduler.HealthProbeCron = "every minute"
		}, "health_probe_cron"},
		{"valid", func(c *Config) {}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.App.SecretKey = "secret"
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
