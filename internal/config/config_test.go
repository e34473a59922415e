package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoad_Defaults(t *testing.T) {
	t.Setenv("ASSISTANT_STORE_DRIVER", "")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, LLMNone, cfg.LLMProvider)
	assert.Equal(t, "Київ", cfg.DefaultCity)
	assert.Equal(t, "UAH", cfg.DefaultCurrency)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, 5*time.Second, cfg.CollaboratorTimeout())
	assert.Equal(t, ":8000", cfg.GetHTTPAddr())
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	t.Setenv("ASSISTANT_STORE_DRIVER", "sqlite")
	t.Setenv("ASSISTANT_SQLITE_PATH", "/tmp/a.db")
	t.Setenv("ASSISTANT_DEFAULT_CITY", "Львів")
	t.Setenv("ASSISTANT_COLLABORATOR_TIMEOUT_MS", "750")
	t.Setenv("ASSISTANT_REDIS_TTL_SECONDS", "60")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "/tmp/a.db", cfg.SQLitePath)
	assert.Equal(t, "Львів", cfg.DefaultCity)
	assert.Equal(t, 750*time.Millisecond, cfg.CollaboratorTimeout())
	assert.Equal(t, time.Minute, cfg.RedisTTL())
}

func TestResolveDefaultsRejectsBadValues(t *testing.T) {
	cases := map[string]func(c *Config){
		"unknown driver":       func(c *Config) { c.StoreDriver = "mongo" },
		"postgres without dsn": func(c *Config) { c.StoreDriver = DriverPostgres },
		"redis without url":    func(c *Config) { c.StoreDriver = DriverRedis },
		"sqlite without path":  func(c *Config) { c.StoreDriver = DriverSQLite; c.SQLitePath = "" },
		"unknown llm provider": func(c *Config) { c.LLMProvider = "claude" },
		"unknown environment":  func(c *Config) { c.Environment = "staging" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := NewForTesting()
			mutate(cfg)
			assert.Error(t, cfg.ResolveDefaults())
		})
	}
}

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting()
	require.NoError(t, cfg.ResolveDefaults())
	assert.True(t, cfg.IsTesting())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
}
