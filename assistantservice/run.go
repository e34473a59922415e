// Package assistantservice wires configuration, stores, collaborators and the
// HTTP boundary into the running assistant backend.
package assistantservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/agents052025/assistant-be-ios/internal/api"
	"github.com/agents052025/assistant-be-ios/internal/config"
	"github.com/agents052025/assistant-be-ios/internal/coordinator"
	"github.com/agents052025/assistant-be-ios/internal/extract"
	"github.com/agents052025/assistant-be-ios/internal/factory"
	"github.com/agents052025/assistant-be-ios/internal/handler"
	"github.com/agents052025/assistant-be-ios/internal/health"
	"github.com/agents052025/assistant-be-ios/internal/logger"
	"github.com/agents052025/assistant-be-ios/internal/store"
)

const serviceName = "assistant-service"

// Run starts the assistant HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New(serviceName)

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	logger.SetLevel(cfg.LogLevel)

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("store_driver", cfg.StoreDriver).
		Int("http_port", cfg.HTTPPort).
		Str("llm_provider", cfg.LLMProvider).
		Str("default_city", cfg.DefaultCity).
		Msg("Assistant service starting")

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	deps, err := initDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := factory.CloseStore(deps.store); err != nil {
			log.Warn().Err(err).Msg("store close failed")
		}
	}()

	router := buildRouter(deps, cfg, log)

	svcHealth := startHealthCheckers(ctx, cfg, log, deps.store)

	// Block startup until dependencies report healthy; fail fast otherwise
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

type dependencies struct {
	store       store.Store
	registry    *handler.Registry
	coordinator *coordinator.Coordinator
}

// initDependencies fails fast on a broken store or rules file. Missing
// collaborator credentials only disable the live lookups.
func initDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (dependencies, error) {
	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return dependencies{}, err
	}

	model := factory.NewUnderstander(ctx, cfg, log)
	classifier, err := factory.NewClassifier(cfg, model, log.With().Str("component", "classifier").Logger())
	if err != nil {
		log.Error().Stack().Err(err).Msg("Intent rules unavailable")
		_ = factory.CloseStore(st)
		return dependencies{}, err
	}

	handlerLog := log.With().Str("component", "handler").Logger()
	registry := handler.NewDefaultRegistry(handler.Deps{
		Weather: factory.NewWeather(cfg, log),
		News:    factory.NewNews(cfg, log),
		Locator: &extract.Locator{
			DefaultCity: cfg.DefaultCity,
			Model:       model,
			Timeout:     cfg.CollaboratorTimeout(),
			Log:         handlerLog,
		},
		DefaultCity:     cfg.DefaultCity,
		DefaultCurrency: cfg.DefaultCurrency,
		Timeout:         cfg.CollaboratorTimeout(),
		Log:             handlerLog,
	})

	coord := coordinator.New(classifier, registry, st,
		coordinator.WithHistoryLimit(cfg.HistoryLimit),
		coordinator.WithLogger(log.With().Str("component", "coordinator").Logger()),
	)
	return dependencies{store: st, registry: registry, coordinator: coord}, nil
}

func buildRouter(d dependencies, cfg *config.Config, log zerolog.Logger) *mux.Router {
	return api.NewRouter(api.Deps{
		Assistant:       d.coordinator,
		Store:           d.store,
		Registry:        d.registry,
		HistoryMaxLimit: cfg.HistoryMaxLimit,
		MaxMessageBytes: cfg.MaxMessageBytes,
		Log:             log.With().Str("component", "api").Logger(),
	})
}

// startHealthCheckers starts component checkers and the service-level aggregator; binds health.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) *health.ServiceHealthChecker {
	interval := cfg.HealthInterval()

	storeChecker := store.NewStoreHealthChecker(st, log, cfg.HealthProbeTimeout())
	go storeChecker.Start(ctx, interval)

	// Classification and handlers are local; collaborators degrade instead of failing.
	local := health.Static{ComponentName: "coordinator", Healthy: true}

	svcHealth := health.NewServiceHealthChecker(log, storeChecker, local)
	go svcHealth.Start(ctx, interval)
	api.BindServiceHealth(svcHealth.IsHealthy)
	api.BindComponentHealth(svcHealth.Components)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// startupHealthTimeout is twice the probe interval, at least 30 seconds.
func startupHealthTimeout(healthIntervalSeconds int) int {
	return max(healthIntervalSeconds*2, 30)
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	timeoutSeconds := startupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
