package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"skillsync/internal/domain/event"

	"github.com/google/uuid"
)

func testClient(hub *Hub, userID *uuid.UUID) *Client {
	return &Client{hub: hub, send: make(chan []byte, 4), userID: userID}
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", n, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func receive(c *Client) ([]byte, bool) {
	select {
	case b := <-c.send:
		return b, true
	case <-time.After(200 * time.Millisecond):
		return nil, false
	}
}

func TestHub_RoutesByUser(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	alice := uuid.New()
	bob := uuid.New()
	anon := testClient(hub, nil)
	a := testClient(hub, &alice)
	b := testClient(hub, &bob)
	hub.Register(anon)
	hub.Register(a)
	hub.Register(b)
	waitForClients(t, hub, 3)

	NewNotifier(hub).Publish(context.Background(), event.New(event.TypeCVAnalysisCreated, &alice, uuid.New(), time.Now()))

	msg, ok := receive(a)
	if !ok {
		t.Fatalf("expected alice to receive her event")
	}
	var got event.Event
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Type != event.TypeCVAnalysisCreated || got.UserID == nil || *got.UserID != alice {
		t.Fatalf("unexpected event: %+v", got)
	}
	if _, ok := receive(b); ok {
		t.Fatalf("bob must not receive alice's event")
	}
	if _, ok := receive(anon); ok {
		t.Fatalf("anonymous client must not receive private events")
	}

	hub.Broadcast(nil, []byte(`{"type":"job.created"}`))
	for _, c := range []*Client{anon, a, b} {
		if _, ok := receive(c); !ok {
			t.Fatalf("expected public event for %s", c.userLabel())
		}
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	c := testClient(hub, nil)
	hub.Register(c)
	waitForClients(t, hub, 1)

	hub.Unregister(c)
	waitForClients(t, hub, 0)
	if _, open := <-c.send; open {
		t.Fatalf("expected send channel closed")
	}
}
