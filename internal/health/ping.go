package health

import "context"

// HealthPinger is implemented by components with a dedicated health check.
// HealthPing returns nil when the component is healthy.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
