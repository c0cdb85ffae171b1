package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/artgrid/internal/artic"
	"github.com/lehigh-university-libraries/artgrid/internal/pagination"
)

// Config holds the runtime settings for artgrid
type Config struct {
	APIURL       string        `yaml:"api_url"`
	UserAgent    string        `yaml:"user_agent"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	// RenderWait bounds how long a page render waits for its fetch before
	// showing the previous rows
	RenderWait time.Duration `yaml:"render_wait"`
	Port         string        `yaml:"port"`
	PageSize     int           `yaml:"page_size"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
	CORSOrigins  []string      `yaml:"cors_origins"`
	Snapshot     string        `yaml:"snapshot"`

	Log       LogConfig       `yaml:"log"`
	FluentBit FluentBitConfig `yaml:"fluentbit"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

type FluentBitConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Tag     string `yaml:"tag"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		APIURL:     artic.DefaultBaseURL,
		Port:       "8888",
		PageSize:   pagination.DefaultPageSize,
		RenderWait: 10 * time.Second,
		SessionTTL: 24 * time.Hour,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		FluentBit: FluentBitConfig{
			Port: 24224,
			Tag:  "artgrid",
		},
	}
}

// Load builds the configuration from defaults, then the environment, then the
// YAML file at path when one is given.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.applyEnv()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.APIURL = getEnv("ARTGRID_API_URL", c.APIURL)
	c.UserAgent = getEnv("ARTGRID_USER_AGENT", c.UserAgent)
	c.FetchTimeout = getEnvAsDuration("ARTGRID_FETCH_TIMEOUT", c.FetchTimeout)
	c.RenderWait = getEnvAsDuration("ARTGRID_RENDER_WAIT", c.RenderWait)
	c.Port = getEnv("ARTGRID_PORT", c.Port)
	c.PageSize = getEnvAsInt("ARTGRID_PAGE_SIZE", c.PageSize)
	c.SessionTTL = getEnvAsDuration("ARTGRID_SESSION_TTL", c.SessionTTL)
	c.Snapshot = getEnv("ARTGRID_SNAPSHOT", c.Snapshot)
	if origins := getEnv("ARTGRID_CORS_ORIGINS", ""); origins != "" {
		c.CORSOrigins = splitList(origins)
	}

	c.Log.Level = getEnv("ARTGRID_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("ARTGRID_LOG_FORMAT", c.Log.Format)

	c.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", c.FluentBit.Enabled)
	c.FluentBit.Host = getEnv("FLUENTBIT_HOST", c.FluentBit.Host)
	c.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", c.FluentBit.Port)
	c.FluentBit.Tag = getEnv("FLUENTBIT_TAG", c.FluentBit.Tag)
}

// Validate checks settings that would otherwise fail later at runtime
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch timeout must not be negative, got %s", c.FetchTimeout)
	}
	if c.RenderWait <= 0 {
		return fmt.Errorf("render wait must be positive, got %s", c.RenderWait)
	}
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s (supported: text, json)", c.Log.Format)
	}
	if c.FluentBit.Enabled && c.FluentBit.Host == "" {
		return fmt.Errorf("fluentbit host is required when fluentbit is enabled")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("Environment variable is not an int, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		slog.Warn("Environment variable is not a bool, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return valueBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("Environment variable is not a duration, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
