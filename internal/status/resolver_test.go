package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/iliyamo/conference-companion/internal/model"
)

type fakeHalls struct {
	halls []model.Hall
	err   error
}

func (f *fakeHalls) List(ctx context.Context) ([]model.Hall, error) {
	return f.halls, f.err
}

// fakeSessions answers current/next by scanning an in-memory slice the way
// the SQL queries do: current is the first session covering now, next the
// earliest one starting after now.
type fakeSessions struct {
	byHall map[uint64][]model.Session
	err    error
}

func (f *fakeSessions) CurrentForHall(ctx context.Context, hallID uint64, now time.Time) (*model.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.byHall[hallID] {
		if !s.StartsAt.After(now) && s.EndsAt.After(now) {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeSessions) NextForHall(ctx context.Context, hallID uint64, now time.Time) (*model.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	var best *model.Session
	for _, s := range f.byHall[hallID] {
		if s.StartsAt.After(now) && (best == nil || s.StartsAt.Before(best.StartsAt)) {
			out := s
			best = &out
		}
	}
	return best, nil
}

func TestResolverCurrentAndNext(t *testing.T) {
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	x := model.Session{ID: 1, Title: "X", HallID: 1, StartsAt: day.Add(9 * time.Hour), EndsAt: day.Add(10 * time.Hour)}
	y := model.Session{ID: 2, Title: "Y", HallID: 1, StartsAt: day.Add(10 * time.Hour), EndsAt: day.Add(11 * time.Hour)}

	halls := &fakeHalls{halls: []model.Hall{{ID: 1, Name: "Hall A", Code: "A"}}}
	sessions := &fakeSessions{byHall: map[uint64][]model.Session{1: {x, y}}}

	clock := clockwork.NewFakeClockAt(day.Add(9*time.Hour + 30*time.Minute))
	r := NewResolver(halls, sessions, clock)

	out, err := r.Statuses(context.Background())
	if err != nil {
		t.Fatalf("Statuses: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 hall status, got %d", len(out))
	}
	st := out[0]
	if st.Current == nil || st.Current.ID != x.ID {
		t.Fatalf("current = %+v, want session X", st.Current)
	}
	if st.Next == nil || st.Next.ID != y.ID {
		t.Fatalf("next = %+v, want session Y", st.Next)
	}
	if st.TimeRemaining == nil || *st.TimeRemaining != 30 {
		t.Fatalf("timeRemaining = %v, want 30", st.TimeRemaining)
	}
}

func TestResolverBackToBackBoundary(t *testing.T) {
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	x := model.Session{ID: 1, Title: "X", HallID: 1, StartsAt: day.Add(9 * time.Hour), EndsAt: day.Add(10 * time.Hour)}
	y := model.Session{ID: 2, Title: "Y", HallID: 1, StartsAt: day.Add(10 * time.Hour), EndsAt: day.Add(11 * time.Hour)}

	halls := &fakeHalls{halls: []model.Hall{{ID: 1, Name: "Hall A", Code: "A"}}}
	sessions := &fakeSessions{byHall: map[uint64][]model.Session{1: {x, y}}}

	// Exactly at the handover instant the later session is current and
	// nothing is next.
	clock := clockwork.NewFakeClockAt(day.Add(10 * time.Hour))
	r := NewResolver(halls, sessions, clock)

	out, err := r.Statuses(context.Background())
	if err != nil {
		t.Fatalf("Statuses: %v", err)
	}
	st := out[0]
	if st.Current == nil || st.Current.ID != y.ID {
		t.Fatalf("current = %+v, want session Y", st.Current)
	}
	if st.Next != nil {
		t.Fatalf("next = %+v, want nil", st.Next)
	}
	if st.TimeRemaining == nil || *st.TimeRemaining != 60 {
		t.Fatalf("timeRemaining = %v, want 60", st.TimeRemaining)
	}
}

func TestResolverIdleHall(t *testing.T) {
	halls := &fakeHalls{halls: []model.Hall{{ID: 7, Name: "Hall B", Code: "B"}}}
	sessions := &fakeSessions{byHall: map[uint64][]model.Session{}}

	r := NewResolver(halls, sessions, clockwork.NewFakeClockAt(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)))
	out, err := r.Statuses(context.Background())
	if err != nil {
		t.Fatalf("Statuses: %v", err)
	}
	st := out[0]
	if st.Current != nil || st.Next != nil || st.TimeRemaining != nil {
		t.Fatalf("idle hall should be all nil, got %+v", st)
	}
	if st.Hall.ID != 7 {
		t.Fatalf("hall ref = %+v, want id 7", st.Hall)
	}
}

func TestResolverSharedNowIsIdempotent(t *testing.T) {
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	x := model.Session{ID: 1, HallID: 1, StartsAt: day.Add(9 * time.Hour), EndsAt: day.Add(10 * time.Hour)}

	halls := &fakeHalls{halls: []model.Hall{{ID: 1}, {ID: 2}}}
	sessions := &fakeSessions{byHall: map[uint64][]model.Session{1: {x}}}
	clock := clockwork.NewFakeClockAt(day.Add(9*time.Hour + 45*time.Minute))
	r := NewResolver(halls, sessions, clock)

	first, err := r.Statuses(context.Background())
	if err != nil {
		t.Fatalf("Statuses: %v", err)
	}
	second, err := r.Statuses(context.Background())
	if err != nil {
		t.Fatalf("Statuses: %v", err)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 statuses each call, got %d and %d", len(first), len(second))
	}
	if *first[0].TimeRemaining != *second[0].TimeRemaining {
		t.Fatalf("repeat call changed remaining: %d vs %d", *first[0].TimeRemaining, *second[0].TimeRemaining)
	}
}

func TestResolverLookupErrorFailsWhole(t *testing.T) {
	halls := &fakeHalls{halls: []model.Hall{{ID: 1}, {ID: 2}}}
	boom := errors.New("connection reset")
	sessions := &fakeSessions{err: boom}

	r := NewResolver(halls, sessions, clockwork.NewFakeClockAt(time.Now()))
	if _, err := r.Statuses(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error to surface, got %v", err)
	}
}

func TestResolverRemainingNeverNegative(t *testing.T) {
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	// Session whose end equals now minus a sub-minute sliver would floor to
	// zero; the clamp keeps it there rather than -0 drifting negative.
	x := model.Session{ID: 1, HallID: 1, StartsAt: day, EndsAt: day.Add(time.Hour)}
	halls := &fakeHalls{halls: []model.Hall{{ID: 1}}}
	sessions := &fakeSessions{byHall: map[uint64][]model.Session{1: {x}}}

	clock := clockwork.NewFakeClockAt(day.Add(59*time.Minute + 59*time.Second))
	r := NewResolver(halls, sessions, clock)
	out, err := r.Statuses(context.Background())
	if err != nil {
		t.Fatalf("Statuses: %v", err)
	}
	if out[0].TimeRemaining == nil || *out[0].TimeRemaining != 0 {
		t.Fatalf("timeRemaining = %v, want 0", out[0].TimeRemaining)
	}
}
