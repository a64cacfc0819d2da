package config

import (
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Config holds server settings. Values come from config.yaml when present,
// with environment variables taking precedence so hosted deploys can override
// the file without rebuilding.
type Config struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	SessionTTL     string   `yaml:"session_ttl"`
	RateLimit      struct {
		PerSecond float64 `yaml:"per_second"`
		Burst     int     `yaml:"burst"`
	} `yaml:"rate_limit"`
}

var defaults = Config{
	Port: "5050",
	AllowedOrigins: []string{
		"http://localhost:5173",
		"http://localhost:5174",
	},
	SessionTTL: "6h",
}

func init() {
	defaults.RateLimit.PerSecond = 5
	defaults.RateLimit.Burst = 10
}

// Load reads config.yaml from path (missing file is fine) and applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := defaults

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		cfg.SessionTTL = ttl
	}

	return cfg, nil
}

// SessionDuration parses SessionTTL, falling back to six hours on a bad value.
func (c Config) SessionDuration() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil || d <= 0 {
		return 6 * time.Hour
	}
	return d
}
