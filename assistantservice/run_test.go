package assistantservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agents052025/assistant-be-ios/internal/config"
	"github.com/agents052025/assistant-be-ios/internal/health"
)

func TestStartupHealthTimeout(t *testing.T) {
	assert.Equal(t, 30, startupHealthTimeout(1))
	assert.Equal(t, 30, startupHealthTimeout(15))
	assert.Equal(t, 120, startupHealthTimeout(60))
}

func TestWiredRouterServesChat(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cfg := config.NewForTesting()

	deps, err := initDependencies(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	router := buildRouter(deps, cfg, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/send",
		strings.NewReader(`{"message":"Нагадай купити молоко о 18:00","user_id":"u1"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"intent":"create_reminder"`)
	assert.Contains(t, rr.Body.String(), "18:00")

	svc := startHealthCheckers(ctx, cfg, zerolog.Nop(), deps.store)
	require.NoError(t, waitUntilHealthy(ctx, cfg, svc))
	assert.Equal(t, map[string]bool{"store": true, "coordinator": true}, svc.Components())
}

func TestInitDependenciesRejectsBadRules(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.IntentRulesPath = "does/not/exist.yaml"
	_, err := initDependencies(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestWaitUntilHealthyCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	svc := health.NewServiceHealthChecker(zerolog.Nop(), health.Static{ComponentName: "x", Healthy: false})

	err := waitUntilHealthy(ctx, config.NewForTesting(), svc)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
