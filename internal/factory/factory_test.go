package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agents052025/assistant-be-ios/internal/config"
	"github.com/agents052025/assistant-be-ios/internal/model"
	"github.com/agents052025/assistant-be-ios/internal/store/memory"
	"github.com/agents052025/assistant-be-ios/internal/store/sqlstore"
	"github.com/agents052025/assistant-be-ios/internal/store/storetest"
)

func TestNewStoreMemory(t *testing.T) {
	cfg := config.NewForTesting()
	st, err := NewStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, st)
	assert.NoError(t, CloseStore(st))
}

func TestNewStoreSQLite(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.StoreDriver = config.DriverSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "nested", "assistant.db")

	st, err := NewStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer CloseStore(st)
	assert.IsType(t, &sqlstore.Store{}, st)

	ctx := context.Background()
	require.NoError(t, st.Append(ctx, storetest.Record("u1", 1, time.Now())))
	recs, err := st.HistoryFor(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestNewStoreErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown driver", func(c *config.Config) { c.StoreDriver = "cassandra" }},
		{"postgres without dsn", func(c *config.Config) { c.StoreDriver = config.DriverPostgres }},
		{"redis without url", func(c *config.Config) { c.StoreDriver = config.DriverRedis }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewForTesting()
			tt.mutate(cfg)
			_, err := NewStore(context.Background(), cfg, zerolog.Nop())
			assert.Error(t, err)
		})
	}
}

func TestCollaboratorsWithoutKeys(t *testing.T) {
	cfg := config.NewForTesting()
	log := zerolog.Nop()

	assert.Nil(t, NewWeather(cfg, log))
	assert.Nil(t, NewNews(cfg, log))

	for _, provider := range []string{config.LLMNone, config.LLMOpenAI, config.LLMGemini} {
		cfg.LLMProvider = provider
		assert.Nil(t, NewUnderstander(context.Background(), cfg, log), provider)
	}
}

func TestCollaboratorsWithKeys(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.WeatherAPIKey = "w"
	cfg.NewsAPIKey = "n"
	cfg.LLMProvider = config.LLMOpenAI
	cfg.OpenAIAPIKey = "sk-test"
	log := zerolog.Nop()

	assert.NotNil(t, NewWeather(cfg, log))
	assert.NotNil(t, NewNews(cfg, log))
	assert.NotNil(t, NewUnderstander(context.Background(), cfg, log))
}

func TestNewClassifierWithRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  weather:\n    words: [дощик]\n"), 0o600))
	cfg := config.NewForTesting()
	cfg.IntentRulesPath = path

	cls, err := NewClassifier(cfg, nil, zerolog.Nop())
	require.NoError(t, err)
	got := cls.Classify(context.Background(), "чи буде дощик", nil)
	assert.Equal(t, model.IntentGetWeather, got.Intent)
}

func TestNewClassifierBadRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  nope:\n    words: [x]\n"), 0o600))
	cfg := config.NewForTesting()
	cfg.IntentRulesPath = path

	_, err := NewClassifier(cfg, nil, zerolog.Nop())
	assert.Error(t, err)
	cfg.IntentRulesPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = NewClassifier(cfg, nil, zerolog.Nop())
	assert.Error(t, err)
}
