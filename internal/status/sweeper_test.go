package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/iliyamo/conference-companion/internal/model"
	"github.com/iliyamo/conference-companion/internal/realtime"
)

type fakeSweepStore struct {
	sessions []model.Session
	listErr  error
	setErr   map[uint64]error
	flips    map[uint64]model.SessionStatus
}

func (f *fakeSweepStore) ListUnfinished(ctx context.Context) ([]model.Session, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Session, len(f.sessions))
	copy(out, f.sessions)
	return out, nil
}

func (f *fakeSweepStore) SetStatus(ctx context.Context, id uint64, status model.SessionStatus) error {
	if err := f.setErr[id]; err != nil {
		return err
	}
	if f.flips == nil {
		f.flips = map[uint64]model.SessionStatus{}
	}
	f.flips[id] = status
	return nil
}

type recordingBroadcaster struct {
	events []string
	data   []any
}

func (r *recordingBroadcaster) Emit(event string, data any) {
	r.events = append(r.events, event)
	r.data = append(r.data, data)
}

func TestSweepFlipsAndBroadcasts(t *testing.T) {
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeSweepStore{sessions: []model.Session{
		{ID: 1, StartsAt: day.Add(9 * time.Hour), EndsAt: day.Add(10 * time.Hour), Status: model.StatusUpcoming},
		{ID: 2, StartsAt: day.Add(11 * time.Hour), EndsAt: day.Add(12 * time.Hour), Status: model.StatusUpcoming},
		{ID: 3, StartsAt: day.Add(8 * time.Hour), EndsAt: day.Add(9 * time.Hour), Status: model.StatusOngoing},
	}}
	bc := &recordingBroadcaster{}
	clock := clockwork.NewFakeClockAt(day.Add(9*time.Hour + 30*time.Minute))
	s := NewSweeper(store, bc, clock)

	s.sweep(context.Background())

	if got := store.flips[1]; got != model.StatusOngoing {
		t.Fatalf("session 1 flipped to %q, want ongoing", got)
	}
	if _, flipped := store.flips[2]; flipped {
		t.Fatal("session 2 is still upcoming, should not flip")
	}
	if got := store.flips[3]; got != model.StatusCompleted {
		t.Fatalf("session 3 flipped to %q, want completed", got)
	}
	if len(bc.events) != 2 {
		t.Fatalf("expected 2 broadcasts, got %d", len(bc.events))
	}
	for _, ev := range bc.events {
		if ev != realtime.ScheduleUpdate {
			t.Fatalf("broadcast event = %q, want %q", ev, realtime.ScheduleUpdate)
		}
	}
}

func TestSweepSkipsFailedPersist(t *testing.T) {
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeSweepStore{
		sessions: []model.Session{
			{ID: 1, StartsAt: day, EndsAt: day.Add(time.Hour), Status: model.StatusUpcoming},
		},
		setErr: map[uint64]error{1: errors.New("deadlock")},
	}
	bc := &recordingBroadcaster{}
	s := NewSweeper(store, bc, clockwork.NewFakeClockAt(day.Add(30*time.Minute)))

	s.sweep(context.Background())

	if len(bc.events) != 0 {
		t.Fatalf("failed persist must not broadcast, got %d events", len(bc.events))
	}
}

func TestNextDelayPicksEarliestBoundary(t *testing.T) {
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	now := day.Add(9 * time.Hour)
	clock := clockwork.NewFakeClockAt(now)
	s := NewSweeper(&fakeSweepStore{}, nil, clock)

	sessions := []model.Session{
		{ID: 1, StartsAt: day.Add(9*time.Hour - 30*time.Minute), EndsAt: day.Add(9*time.Hour + 10*time.Minute), Status: model.StatusOngoing},
		{ID: 2, StartsAt: day.Add(9*time.Hour + 45*time.Minute), EndsAt: day.Add(11 * time.Hour), Status: model.StatusUpcoming},
	}
	d, ok := s.nextDelay(sessions)
	if !ok {
		t.Fatal("expected a boundary within the horizon")
	}
	if d != 10*time.Minute {
		t.Fatalf("delay = %v, want 10m", d)
	}
}

func TestNextDelayIgnoresFarBoundaries(t *testing.T) {
	now := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	s := NewSweeper(&fakeSweepStore{}, nil, clockwork.NewFakeClockAt(now))

	sessions := []model.Session{
		{ID: 1, StartsAt: now.Add(48 * time.Hour), EndsAt: now.Add(49 * time.Hour), Status: model.StatusUpcoming},
	}
	if _, ok := s.nextDelay(sessions); ok {
		t.Fatal("boundary beyond the horizon must not arm a timer")
	}
	if _, ok := s.nextDelay(nil); ok {
		t.Fatal("no sessions, no timer")
	}
}

func TestResyncCoalesces(t *testing.T) {
	s := NewSweeper(&fakeSweepStore{}, nil, clockwork.NewFakeClockAt(time.Now()))

	// Redundant wake-ups collapse into the single buffered slot; none of
	// these calls may block.
	for i := 0; i < 10; i++ {
		s.Resync()
	}
	select {
	case <-s.resync:
	default:
		t.Fatal("expected one pending resync signal")
	}
	select {
	case <-s.resync:
		t.Fatal("resync signals should have coalesced")
	default:
	}
}

func TestSweeperRunStopsOnCancel(t *testing.T) {
	store := &fakeSweepStore{}
	clock := clockwork.NewFakeClockAt(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	s := NewSweeper(store, nil, clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
