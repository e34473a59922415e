package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/agents052025/assistant-be-ios/internal/store"
	"github.com/agents052025/assistant-be-ios/internal/store/storetest"
)

func testURL(t *testing.T) string {
	t.Helper()
	if u := os.Getenv("ASSISTANT_TEST_REDIS_URL"); u != "" {
		return u
	}
	if testing.Short() {
		t.Skip("short mode; skipping redis container")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)
	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestRedisStore_Compliance(t *testing.T) {
	url := testURL(t)
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := Open(context.Background(), url, time.Hour)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestAppendSetsTTL(t *testing.T) {
	url := testURL(t)
	ctx := context.Background()
	s, err := Open(ctx, url, time.Minute)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.Append(ctx, storetest.Record("ttl-user", 1, time.Now().UTC())))
	ttl, err := s.rdb.TTL(ctx, key("ttl-user")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	_, err = s.Purge(ctx, "ttl-user")
	require.NoError(t, err)
}
