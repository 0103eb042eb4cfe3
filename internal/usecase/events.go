package usecase

import (
	"context"

	"skillsync/internal/domain/event"
)

// EventPublisher fans domain events out to realtime and queue consumers.
// Publishing is fire-and-forget; failures are logged by the implementation.
type EventPublisher interface {
	Publish(ctx context.Context, e event.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, event.Event) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
