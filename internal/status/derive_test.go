package status

import (
	"testing"
	"time"

	"github.com/iliyamo/conference-companion/internal/model"
)

func session(start, end time.Time, st model.SessionStatus) model.Session {
	return model.Session{ID: 1, Title: "Opening Keynote", StartsAt: start, EndsAt: end, Status: st}
}

func TestDerive(t *testing.T) {
	start := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	cases := []struct {
		name   string
		stored model.SessionStatus
		now    time.Time
		want   model.SessionStatus
	}{
		{"before start", model.StatusUpcoming, start.Add(-time.Minute), model.StatusUpcoming},
		{"exactly at start", model.StatusUpcoming, start, model.StatusOngoing},
		{"mid session", model.StatusUpcoming, start.Add(30 * time.Minute), model.StatusOngoing},
		{"exactly at end", model.StatusOngoing, end, model.StatusOngoing},
		{"after end", model.StatusOngoing, end.Add(time.Second), model.StatusCompleted},
		{"cancelled before start", model.StatusCancelled, start.Add(-time.Minute), model.StatusCancelled},
		{"cancelled mid session", model.StatusCancelled, start.Add(30 * time.Minute), model.StatusCancelled},
		{"cancelled after end", model.StatusCancelled, end.Add(time.Hour), model.StatusCancelled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Derive(session(start, end, tc.stored), tc.now)
			if got != tc.want {
				t.Fatalf("Derive at %v = %q, want %q", tc.now, got, tc.want)
			}
		})
	}
}

func TestNextBoundary(t *testing.T) {
	start := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	if b, ok := NextBoundary(session(start, end, model.StatusUpcoming), start.Add(-time.Hour)); !ok || !b.Equal(start) {
		t.Fatalf("upcoming boundary = %v, %v; want %v, true", b, ok, start)
	}
	if b, ok := NextBoundary(session(start, end, model.StatusUpcoming), start.Add(10*time.Minute)); !ok || !b.Equal(end) {
		t.Fatalf("ongoing boundary = %v, %v; want %v, true", b, ok, end)
	}
	if _, ok := NextBoundary(session(start, end, model.StatusUpcoming), end.Add(time.Minute)); ok {
		t.Fatal("completed session should have no boundary")
	}
	if _, ok := NextBoundary(session(start, end, model.StatusCancelled), start.Add(-time.Hour)); ok {
		t.Fatal("cancelled session should have no boundary")
	}
}
