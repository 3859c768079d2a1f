package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-companion/internal/model"
	"github.com/iliyamo/conference-companion/internal/status"
)

type stubHalls struct {
	halls []model.Hall
	err   error
}

func (s *stubHalls) List(ctx context.Context) ([]model.Hall, error) { return s.halls, s.err }

type stubSessions struct {
	current map[uint64]*model.Session
	next    map[uint64]*model.Session
}

func (s *stubSessions) CurrentForHall(ctx context.Context, hallID uint64, now time.Time) (*model.Session, error) {
	return s.current[hallID], nil
}

func (s *stubSessions) NextForHall(ctx context.Context, hallID uint64, now time.Time) (*model.Session, error) {
	return s.next[hallID], nil
}

func statusRequest(t *testing.T, h *HallHandler) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/halls/status", nil)
	rec := httptest.NewRecorder()
	return rec, h.Status(e.NewContext(req, rec))
}

func TestHallStatusEndpoint(t *testing.T) {
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	current := &model.Session{ID: 1, Title: "Opening Keynote", HallID: 1,
		StartsAt: day.Add(9 * time.Hour), EndsAt: day.Add(10 * time.Hour), Status: model.StatusOngoing}
	next := &model.Session{ID: 2, Title: "Poster Session", HallID: 1,
		StartsAt: day.Add(10 * time.Hour), EndsAt: day.Add(11 * time.Hour), Status: model.StatusUpcoming}

	halls := &stubHalls{halls: []model.Hall{{ID: 1, Name: "Hall A", Code: "A"}}}
	sessions := &stubSessions{
		current: map[uint64]*model.Session{1: current},
		next:    map[uint64]*model.Session{1: next},
	}
	r := status.NewResolver(halls, sessions, clockwork.NewFakeClockAt(day.Add(9*time.Hour+40*time.Minute)))
	h := &HallHandler{Resolver: r}

	rec, err := statusRequest(t, h)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store, no-cache, must-revalidate, proxy-revalidate, max-age=0" {
		t.Fatalf("Cache-Control = %q", cc)
	}
	if p := rec.Header().Get("Pragma"); p != "no-cache" {
		t.Fatalf("Pragma = %q", p)
	}

	var out []model.HallStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d hall statuses, want 1", len(out))
	}
	st := out[0]
	if st.Current == nil || st.Current.ID != 1 {
		t.Fatalf("current = %+v", st.Current)
	}
	if st.Next == nil || st.Next.ID != 2 {
		t.Fatalf("next = %+v", st.Next)
	}
	if st.TimeRemaining == nil || *st.TimeRemaining != 20 {
		t.Fatalf("timeRemaining = %v, want 20", st.TimeRemaining)
	}
}

func TestHallStatusEndpointIdleHall(t *testing.T) {
	halls := &stubHalls{halls: []model.Hall{{ID: 3, Name: "Hall C", Code: "C"}}}
	sessions := &stubSessions{}
	r := status.NewResolver(halls, sessions, clockwork.NewFakeClockAt(time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)))
	h := &HallHandler{Resolver: r}

	rec, err := statusRequest(t, h)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}

	// Idle halls serialize with explicit nulls so the client can render
	// "no session" without special cases.
	var out []map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	for _, key := range []string{"current", "next", "timeRemaining"} {
		raw, present := out[0][key]
		if !present || string(raw) != "null" {
			t.Fatalf("%s = %s, want explicit null", key, raw)
		}
	}
}

func TestHallStatusEndpointError(t *testing.T) {
	halls := &stubHalls{err: errors.New("timeout")}
	r := status.NewResolver(halls, &stubSessions{}, clockwork.NewFakeClockAt(time.Now()))
	h := &HallHandler{Resolver: r}

	rec, err := statusRequest(t, h)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc == "" {
		t.Fatal("error responses must still disable caching")
	}
}
