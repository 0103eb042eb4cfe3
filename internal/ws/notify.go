package ws

import (
	"context"
	"encoding/json"

	"skillsync/internal/domain/event"
)

// Notifier publishes domain events to websocket clients.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) Publish(_ context.Context, e event.Event) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(e)
	if err != nil {
		return
	}
	n.hub.Broadcast(e.UserID, b)
}
