package status

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/conference-companion/internal/model"
)

// HallSource lists the halls the resolver reports on.
type HallSource interface {
	List(ctx context.Context) ([]model.Hall, error)
}

// SessionSource answers the two per-hall questions the resolver asks.  A
// nil session with a nil error means "nothing current/next".
type SessionSource interface {
	CurrentForHall(ctx context.Context, hallID uint64, now time.Time) (*model.Session, error)
	NextForHall(ctx context.Context, hallID uint64, now time.Time) (*model.Session, error)
}

// Resolver produces the derived HallStatus view: one snapshot per hall,
// valid only at call time.  It is purely read-only; callers must not cache
// the result beyond the request that asked for it.
type Resolver struct {
	halls    HallSource
	sessions SessionSource
	clock    clockwork.Clock
}

// NewResolver wires the resolver to its stores.  A nil clock falls back to
// the real one.
func NewResolver(halls HallSource, sessions SessionSource, clock clockwork.Clock) *Resolver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Resolver{halls: halls, sessions: sessions, clock: clock}
}

// Statuses computes one HallStatus per hall against a single shared "now".
// Per-hall lookups are read-only and independent, so they run concurrently;
// the first lookup error fails the whole aggregate (no partial results).
func (r *Resolver) Statuses(ctx context.Context) ([]model.HallStatus, error) {
	halls, err := r.halls.List(ctx)
	if err != nil {
		return nil, err
	}
	now := r.clock.Now().UTC()

	out := make([]model.HallStatus, len(halls))
	g, gctx := errgroup.WithContext(ctx)
	for i, h := range halls {
		g.Go(func() error {
			st, err := r.statusFor(gctx, h, now)
			if err != nil {
				return err
			}
			out[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resolver) statusFor(ctx context.Context, h model.Hall, now time.Time) (model.HallStatus, error) {
	current, err := r.sessions.CurrentForHall(ctx, h.ID, now)
	if err != nil {
		return model.HallStatus{}, err
	}
	next, err := r.sessions.NextForHall(ctx, h.ID, now)
	if err != nil {
		return model.HallStatus{}, err
	}

	var remaining *int
	if current != nil {
		m := int(current.EndsAt.Sub(now) / time.Minute)
		if m < 0 {
			m = 0
		}
		remaining = &m
	}
	return model.HallStatus{Hall: h.Ref(), Current: current, Next: next, TimeRemaining: remaining}, nil
}
