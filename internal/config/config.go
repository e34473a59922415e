// Package config loads service configuration from ASSISTANT_* environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// LLM providers.
const (
	LLMNone   = "none"
	LLMOpenAI = "openai"
	LLMGemini = "gemini"
)

// Config holds the configuration for the assistant service.
// Environment variables are parsed with the ASSISTANT_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`

	HTTPPort int `envconfig:"HTTP_PORT" default:"8000"`
	// MaxMessageBytes caps the message text accepted by the HTTP boundary.
	MaxMessageBytes int `envconfig:"MAX_MESSAGE_BYTES" default:"8192"`

	StoreDriver     string `envconfig:"STORE_DRIVER" default:"memory"`
	SQLitePath      string `envconfig:"SQLITE_PATH" default:"data/assistant.db"`
	PostgresDSN     string `envconfig:"POSTGRES_DSN" default:""`
	RedisURL        string `envconfig:"REDIS_URL" default:""`
	RedisTTLSeconds int    `envconfig:"REDIS_TTL_SECONDS" default:"0"`

	// HistoryLimit is how many past records handlers see as context.
	HistoryLimit int `envconfig:"HISTORY_LIMIT" default:"10"`
	// HistoryMaxLimit caps limit on the history endpoint.
	HistoryMaxLimit int `envconfig:"HISTORY_MAX_LIMIT" default:"100"`

	DefaultCity     string `envconfig:"DEFAULT_CITY" default:"Київ"`
	DefaultCurrency string `envconfig:"DEFAULT_CURRENCY" default:"UAH"`

	CollaboratorTimeoutMS int    `envconfig:"COLLABORATOR_TIMEOUT_MS" default:"5000"`
	WeatherAPIKey         string `envconfig:"WEATHER_API_KEY" default:""`
	WeatherBaseURL        string `envconfig:"WEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	NewsAPIKey            string `envconfig:"NEWS_API_KEY" default:""`
	NewsBaseURL           string `envconfig:"NEWS_BASE_URL" default:"https://newsapi.org/v2"`

	LLMProvider   string `envconfig:"LLM_PROVIDER" default:"none"`
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY" default:""`
	GeminiModel   string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	// GeminiBaseURL overrides the SDK endpoint; empty uses Google's.
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL" default:""`

	IntentRulesPath string `envconfig:"INTENT_RULES_PATH" default:""`

	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"15"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates drivers and fills derived values.
func (c *Config) ResolveDefaults() error {
	switch c.Environment {
	case EnvDevelopment, EnvTesting, EnvProduction:
	default:
		return fmt.Errorf("unsupported ENVIRONMENT: %s", c.Environment)
	}

	if c.StoreDriver == "" {
		c.StoreDriver = DriverMemory
	}
	switch c.StoreDriver {
	case DriverMemory:
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for STORE_DRIVER=sqlite")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for STORE_DRIVER=postgres")
		}
	case DriverRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for STORE_DRIVER=redis")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}

	if c.LLMProvider == "" {
		c.LLMProvider = LLMNone
	}
	switch c.LLMProvider {
	case LLMNone, LLMOpenAI, LLMGemini:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER: %s", c.LLMProvider)
	}

	if c.HistoryLimit < 0 {
		c.HistoryLimit = 0
	}
	if c.HistoryMaxLimit <= 0 {
		c.HistoryMaxLimit = 100
	}
	if c.CollaboratorTimeoutMS <= 0 {
		c.CollaboratorTimeoutMS = 5000
	}
	if c.HealthIntervalSeconds <= 0 {
		c.HealthIntervalSeconds = 15
	}
	if c.MaxMessageBytes <= 0 {
		c.MaxMessageBytes = 8192
	}
	return nil
}

// New parses ASSISTANT_* environment variables, e.g. ASSISTANT_HTTP_PORT.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("ASSISTANT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("store_driver", cfg.StoreDriver).
		Str("llm_provider", cfg.LLMProvider).
		Bool("weather_key_present", cfg.WeatherAPIKey != "").
		Bool("news_key_present", cfg.NewsAPIKey != "").
		Str("default_city", cfg.DefaultCity).
		Int("history_limit", cfg.HistoryLimit).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting returns an in-memory configuration with no collaborators.
func NewForTesting() *Config {
	cfg := &Config{
		Environment:               EnvTesting,
		LogLevel:                  "debug",
		HTTPPort:                  8000,
		MaxMessageBytes:           8192,
		StoreDriver:               DriverMemory,
		HistoryLimit:              10,
		HistoryMaxLimit:           100,
		DefaultCity:               "Київ",
		DefaultCurrency:           "UAH",
		CollaboratorTimeoutMS:     200,
		LLMProvider:               LLMNone,
		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
	}
	return cfg
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func (c *Config) CollaboratorTimeout() time.Duration {
	return time.Duration(c.CollaboratorTimeoutMS) * time.Millisecond
}

func (c *Config) RedisTTL() time.Duration {
	return time.Duration(c.RedisTTLSeconds) * time.Second
}

func (c *Config) HealthInterval() time.Duration {
	return time.Duration(c.HealthIntervalSeconds) * time.Second
}

func (c *Config) HealthProbeTimeout() time.Duration {
	return time.Duration(c.HealthProbeTimeoutSeconds) * time.Second
}
