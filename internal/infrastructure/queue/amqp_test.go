package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"skillsync/internal/config"
	"skillsync/internal/domain/event"
)

func TestPublishing_EncodesEvent(t *testing.T) {
	uid := uuid.New()
	e := event.New(event.TypeApplicationCreated, &uid, uuid.New(), time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))

	msg, err := Publishing(e)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if msg.ContentType != "application/json" || msg.Type != event.TypeApplicationCreated {
		t.Fatalf("unexpected headers: %+v", msg)
	}
	if msg.DeliveryMode != amqp.Persistent {
		t.Fatalf("expected persistent delivery")
	}

	var got event.Event
	if err := json.Unmarshal(msg.Body, &got); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Type != e.Type || got.UserID == nil || *got.UserID != uid || got.EntityID != e.EntityID {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestNewPublisher_DisabledWithoutURL(t *testing.T) {
	p, err := NewPublisher(config.AMQPConfig{Exchange: "x"}, nil)
	if err != nil || p != nil {
		t.Fatalf("expected nil publisher, got %v %v", p, err)
	}
}
