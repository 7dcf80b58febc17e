// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type APIConfig struct {
	BaseURL       string        `yaml:"base_url" env:"PELADA_API_BASE_URL"`
	Timeout       time.Duration `yaml:"timeout" env:"PELADA_API_TIMEOUT"`
	UploadTimeout time.Duration `yaml:"upload_timeout" env:"PELADA_API_UPLOAD_TIMEOUT"`
	MediaTimeout  time.Duration `yaml:"media_timeout" env:"PELADA_API_MEDIA_TIMEOUT"`
	// Path prefix of the upstream static-file area served through /media/.
	MediaPrefix string `yaml:"media_prefix" env:"PELADA_API_MEDIA_PREFIX"`
}

type SessionConfig struct {
	CookieName     string        `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
	TTL            time.Duration `yaml:"ttl" env:"SESSION_TTL"`
	MaxRecentVotes int           `yaml:"max_recent_votes"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name" env:"APP_NAME"`
		Environment string `yaml:"environment" env:"ENVIRONMENT"`
		Port        int    `yaml:"port" env:"PORT"`
		BaseURL     string `yaml:"base_url" env:"APP_BASE_URL"`
		SecretKey   string `yaml:"-" env:"APP_SECRET_KEY"` // Loaded from environment
		TrustProxy  bool   `yaml:"trust_proxy" env:"TRUST_PROXY"`
	} `yaml:"app"`

	API       APIConfig     `yaml:"api"`
	Session   SessionConfig `yaml:"session"`
	StaticDir string        `yaml:"static_dir" env:"STATIC_DIR"`

	Features struct {
		EnableMetrics     bool `yaml:"enable_metrics" env:"ENABLE_METRICS"`
		EnableDebug       bool `yaml:"enable_debug" env:"ENABLE_DEBUG"`
		EnableHealthProbe bool `yaml:"enable_health_probe" env:"ENABLE_HEALTH_PROBE"`
	} `yaml:"features"`

	Scheduler struct {
		HealthProbeCron string `yaml:"health_probe_cron" env:"HEALTH_PROBE_CRON"`
	} `yaml:"scheduler"`
}

// Default returns a configuration usable for local development once
// APP_SECRET_KEY is set.
func Default() *Config {
	var cfg Config
	cfg.App.Name = "peladeiro"
	cfg.App.Environment = "development"
	cfg.App.Port = 5000
	cfg.API = APIConfig{
		BaseURL:       "http://localhost:5001",
		Timeout:       20 * time.Second,
		UploadTimeout: 30 * time.Second,
		MediaTimeout:  45 * time.Second,
		MediaPrefix:   "/static",
	}
	cfg.Session = SessionConfig{
		CookieName:     "peladeiro_session",
		TTL:            7 * 24 * time.Hour,
		MaxRecentVotes: 5,
	}
	cfg.StaticDir = "build/bin/static"
	cfg.Scheduler.HealthProbeCron = "*/5 * * * *"
	return &cfg
}

// Load loads .env, the yaml file and environment overrides, in that order.
// A missing yaml file is not an error; defaults and the environment apply.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.App.SecretKey == "" {
		return fmt.Errorf("APP_SECRET_KEY is required")
	}
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api base_url is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api base_url must be an http(s) URL")
	}
	if c.API.Timeout <= 0 || c.API.UploadTimeout <= 0 || c.API.MediaTimeout <= 0 {
		return fmt.Errorf("api timeouts must be positive")
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("session cookie_name is required")
	}
	if c.Session.MaxRecentVotes <= 0 {
		return fmt.Errorf("session max_recent_votes must be positive")
	}
	if c.Features.EnableHealthProbe {
		if _, err := cron.ParseStandard(c.Scheduler.HealthProbeCron); err != nil {
			return fmt.Errorf("invalid health_probe_cron %q: %w", c.Scheduler.HealthProbeCron, err)
		}
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
