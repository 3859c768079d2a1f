package realtime

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubEmitMarshalsEnvelope(t *testing.T) {
	h := NewHub()

	h.Emit(ScheduleUpdate, map[string]any{"id": 42, "status": "ongoing"})

	select {
	case raw := <-h.broadcast:
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("broadcast frame is not valid JSON: %v", err)
		}
		if env.Event != ScheduleUpdate {
			t.Fatalf("event = %q, want %q", env.Event, ScheduleUpdate)
		}
		data, ok := env.Data.(map[string]any)
		if !ok {
			t.Fatalf("data = %T, want object", env.Data)
		}
		if data["status"] != "ongoing" {
			t.Fatalf("data.status = %v, want ongoing", data["status"])
		}
	case <-time.After(time.Second):
		t.Fatal("Emit queued nothing")
	}
}

func TestHubEmitDropsWhenBufferFull(t *testing.T) {
	h := NewHub()

	// Nothing drains the buffer in this test; overflowing it must not block.
	for i := 0; i < cap(h.broadcast)+10; i++ {
		h.Emit(AnnouncementNew, i)
	}
	if got := len(h.broadcast); got != cap(h.broadcast) {
		t.Fatalf("buffered frames = %d, want full buffer %d", got, cap(h.broadcast))
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := &Client{id: "test", hub: h, send: make(chan []byte, 1)}
	h.register <- c
	waitForCount(t, h, 1)

	h.unregister <- c
	waitForCount(t, h, 0)

	if _, open := <-c.send; open {
		t.Fatal("send channel should be closed after unregister")
	}
}

func TestHubBroadcastReachesClients(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := &Client{id: "test", hub: h, send: make(chan []byte, 1)}
	h.register <- c
	waitForCount(t, h, 1)

	h.Emit(MenuUpdate, DeletePayload{ID: 9})

	select {
	case raw := <-c.send:
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("client frame is not valid JSON: %v", err)
		}
		if env.Event != MenuUpdate {
			t.Fatalf("event = %q, want %q", env.Event, MenuUpdate)
		}
	case <-time.After(time.Second):
		t.Fatal("client never received the broadcast")
	}
}

func TestHubDropsSlowConsumer(t *testing.T) {
	h := NewHub()
	go h.Run()

	// Unbuffered send channel with no reader: the first fan-out cannot
	// queue and the client must be evicted instead of blocking the hub.
	c := &Client{id: "slow", hub: h, send: make(chan []byte)}
	h.register <- c
	waitForCount(t, h, 1)

	h.Emit(EventNew, DeletePayload{ID: 1})
	waitForCount(t, h, 0)
}

func waitForCount(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count never reached %d (now %d)", want, h.ClientCount())
}
