package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/agents052025/assistant-be-ios/internal/api/respond"
)

// HealthHandler handles GET /api/health.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

var healthyFlag atomic.Int32

// serviceIsHealthy is replaced by the service once its health checkers run.
var serviceIsHealthy atomic.Value // func() bool

// componentStatus reports per-component health; optional.
var componentStatus atomic.Value // func() map[string]bool

func init() {
	serviceIsHealthy.Store(func() bool { return healthyFlag.Load() == 1 })
	componentStatus.Store(func() map[string]bool { return nil })
}

// BindServiceHealth injects the aggregated health function.
func BindServiceHealth(f func() bool) { serviceIsHealthy.Store(f) }

// BindComponentHealth injects the per-component status used in the body.
func BindComponentHealth(f func() map[string]bool) { componentStatus.Store(f) }

// CheckHealth always returns 200; the body reports healthy or unhealthy.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	if serviceIsHealthy.Load().(func() bool)() {
		status = "healthy"
	}
	body := map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if comps := componentStatus.Load().(func() map[string]bool)(); len(comps) > 0 {
		out := make(map[string]string, len(comps))
		for name, ok := range comps {
			if ok {
				out[name] = "healthy"
			} else {
				out[name] = "unhealthy"
			}
		}
		body["components"] = out
	}
	respond.WriteJSON(w, http.StatusOK, body)
}
