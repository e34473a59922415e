// Package factory builds the service's collaborators from configuration.
package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agents052025/assistant-be-ios/internal/config"
	storepkg "github.com/agents052025/assistant-be-ios/internal/store"
	"github.com/agents052025/assistant-be-ios/internal/store/memory"
	storepg "github.com/agents052025/assistant-be-ios/internal/store/postgres"
	storeredis "github.com/agents052025/assistant-be-ios/internal/store/redis"
	"github.com/agents052025/assistant-be-ios/internal/store/sqlite"
)

// NewStore returns the conversation store selected by cfg.StoreDriver.
// SQL backends are migrated before they are returned.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	var (
		st  storepkg.Store
		err error
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		st = memory.New()
	case config.DriverSQLite:
		st, err = sqlite.New(ctx, cfg.SQLitePath)
	case config.DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("ASSISTANT_POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
		st, err = storepg.New(ctx, cfg.PostgresDSN)
	case config.DriverRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("ASSISTANT_REDIS_URL is required when STORE_DRIVER=redis")
		}
		st, err = storeredis.Open(ctx, cfg.RedisURL, cfg.RedisTTL())
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER: %s", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("conversation store ready")
	return st, nil
}

// CloseStore releases the store if it holds a connection.
func CloseStore(st storepkg.Store) error {
	if c, ok := st.(storepkg.Closer); ok {
		return c.Close()
	}
	return nil
}
