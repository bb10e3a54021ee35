package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

var ErrMissingDatabaseURL = errors.New("config: DATABASE_URL is required")

// Config holds everything main needs to wire the process. Values come
// from an optional config.yaml overridden by environment variables; the
// database credential is environment-only and never ships in a file.
type Config struct {
	Port           string        `yaml:"port"`
	DatabaseURL    string        `yaml:"-"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	LogPretty      bool          `yaml:"log_pretty"`
	TemplateDir    string        `yaml:"template_dir"`
}

// Load reads config.yaml if present, then applies environment
// overrides. godotenv is expected to have run already in main.
func Load() Config {
	cfg := Config{
		Port:        "3000",
		SessionTTL:  6 * time.Hour,
		LogPretty:   false,
		TemplateDir: "templates",
	}

	if raw, err := os.ReadFile("config.yaml"); err == nil {
		_ = yaml.Unmarshal(raw, &cfg)
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if ttl := strings.TrimSpace(os.Getenv("SESSION_TTL")); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			cfg.SessionTTL = d
		}
	}
	if origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}
	if strings.EqualFold(os.Getenv("LOG_PRETTY"), "true") {
		cfg.LogPretty = true
	}
	if dir := strings.TrimSpace(os.Getenv("TEMPLATE_DIR")); dir != "" {
		cfg.TemplateDir = dir
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}
