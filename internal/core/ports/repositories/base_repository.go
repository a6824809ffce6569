package repositories

import "context"

// HealthChecker is implemented by storage backends that can report their liveness.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
