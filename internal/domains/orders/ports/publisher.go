package ports

import "context"

// EventPublisher enqueues a payload on a named stream. The returned error
// reports local enqueue failure only, never remote delivery; callers treat
// it as informational.
type EventPublisher interface {
	Send(ctx context.Context, stream string, payload any) error
}
