package port

import "context"

// Notifier delivers fire-and-forget human-readable signals about portal
// events. Failures are logged by implementations and never propagated.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}
