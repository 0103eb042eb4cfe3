package events

import (
	"context"

	"skillsync/internal/domain/event"
	"skillsync/internal/usecase"
)

// Fanout hands every event to each sink in order. Sinks own their error
// handling.
type Fanout struct {
	sinks []usecase.EventPublisher
}

// NewFanout skips nil sinks.
func NewFanout(sinks ...usecase.EventPublisher) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *Fanout) Publish(ctx context.Context, e event.Event) {
	for _, s := range f.sinks {
		s.Publish(ctx, e)
	}
}

func (f *Fanout) Len() int {
	return len(f.sinks)
}
