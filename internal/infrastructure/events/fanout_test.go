package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"skillsync/internal/domain/event"
)

type countingSink struct{ got []string }

func (c *countingSink) Publish(_ context.Context, e event.Event) { c.got = append(c.got, e.Type) }

func TestFanout_PublishesToEverySink(t *testing.T) {
	a, b := &countingSink{}, &countingSink{}
	f := NewFanout(a, nil, b)
	if f.Len() != 2 {
		t.Fatalf("expected nil sink to be skipped, len=%d", f.Len())
	}

	f.Publish(context.Background(), event.New(event.TypeJobCreated, nil, uuid.New(), time.Now()))

	if len(a.got) != 1 || len(b.got) != 1 || a.got[0] != event.TypeJobCreated {
		t.Fatalf("unexpected deliveries: a=%v b=%v", a.got, b.got)
	}
}
