package brackets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcastToRoom(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	room := PlaygroundRoom(3)
	inRoom := &Client{Hub: hub, Send: make(chan []byte, 1), Room: room}
	elsewhere := &Client{Hub: hub, Send: make(chan []byte, 1), Room: PlaygroundRoom(4)}
	if !hub.Join(inRoom) || !hub.Join(elsewhere) {
		t.Fatal("hub refused clients")
	}
	waitFor(t, func() bool { return hub.Clients() == 2 })

	hub.BroadcastToRoom(room, WebSocketMessage{Type: MessageStandingsUpdated, RoomID: room})

	select {
	case raw := <-inRoom.Send:
		var msg WebSocketMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatal(err)
		}
		if msg.Type != MessageStandingsUpdated || msg.RoomID != "playground_3" {
			t.Fatalf("unexpected message: %+v", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("client in room got nothing")
	}
	select {
	case raw := <-elsewhere.Send:
		t.Fatalf("client in another room got %s", raw)
	default:
	}

	// A full buffer drops the message instead of blocking.
	hub.BroadcastToRoom(room, WebSocketMessage{Type: MessageMatchUpdated})
	hub.BroadcastToRoom(room, WebSocketMessage{Type: MessageMatchUpdated})
	if len(inRoom.Send) != 1 {
		t.Fatalf("expected one buffered message, got %d", len(inRoom.Send))
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	c := &Client{Hub: hub, Send: make(chan []byte, 1), Room: PlaygroundRoom(1)}
	hub.Join(c)
	waitFor(t, func() bool { return hub.RoomSize(c.Room) == 1 })

	hub.leave(c)
	waitFor(t, func() bool { return hub.RoomSize(c.Room) == 0 })
	if _, ok := <-c.Send; ok {
		t.Fatal("expected send channel to be closed")
	}

	cancel()
	waitFor(t, func() bool { return !hub.Join(&Client{Hub: hub, Send: make(chan []byte), Room: "x"}) })
}
