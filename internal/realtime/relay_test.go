package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRelayPostsEnvelope(t *testing.T) {
	got := make(chan Envelope, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/emit" {
			t.Errorf("path = %q, want /api/emit", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		var env Envelope
		if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
			t.Errorf("decode body: %v", err)
		}
		got <- env
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "clients": 3})
	}))
	defer srv.Close()

	r := NewRelay(srv.URL + "/") // trailing slash must not double up
	r.Emit(AnnouncementNew, map[string]string{"title": "Lunch moved to 13:00"})

	select {
	case env := <-got:
		if env.Event != AnnouncementNew {
			t.Fatalf("event = %q, want %q", env.Event, AnnouncementNew)
		}
		data, ok := env.Data.(map[string]any)
		if !ok || data["title"] != "Lunch moved to 13:00" {
			t.Fatalf("data = %#v", env.Data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("relay never delivered the event")
	}
}

func TestRelayFailureIsSilent(t *testing.T) {
	// Nothing listens on this address; Emit must neither block nor panic.
	r := NewRelay("http://127.0.0.1:1")
	done := make(chan struct{})
	go func() {
		r.Emit(ScheduleDelete, DeletePayload{ID: 5})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on an unreachable relay")
	}
}

func TestRelayRejectedStatusIsSilent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewRelay(srv.URL)
	r.Emit(MenuDelete, DeletePayload{ID: 5}) // fire-and-forget; no error surface
	time.Sleep(50 * time.Millisecond)
}
