package status

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/conference-companion/internal/model"
	"github.com/iliyamo/conference-companion/internal/realtime"
)

// SweepStore is the slice of session persistence the sweeper needs.
type SweepStore interface {
	ListUnfinished(ctx context.Context) ([]model.Session, error)
	SetStatus(ctx context.Context, id uint64, status model.SessionStatus) error
}

// Broadcaster pushes flipped sessions to connected viewers.
type Broadcaster interface {
	Emit(event string, data any)
}

// Default sweeper cadence: a coarse safety tick plus a precise one-shot at
// the next transition boundary, armed only when the boundary is near.
const (
	DefaultTick    = 5 * time.Second
	DefaultHorizon = 24 * time.Hour
)

// Sweeper keeps persisted session statuses aligned with the clock.  It is
// the single authority for the upcoming/ongoing/completed transitions;
// handlers only ever write cancelled explicitly.
//
// Two refresh mechanisms run cooperatively inside one goroutine: the coarse
// periodic tick, and a one-shot timer armed at the minimum of all sessions'
// next transition boundaries when that boundary falls within the horizon.
// Resync wakes the loop immediately so the one-shot is recomputed after a
// mutation changes the session list.
type Sweeper struct {
	store     SweepStore
	broadcast Broadcaster
	clock     clockwork.Clock
	tick      time.Duration
	horizon   time.Duration
	resync    chan struct{}
}

// NewSweeper builds a sweeper with the default cadence.  A nil clock falls
// back to the real one; a nil broadcaster disables emits.
func NewSweeper(store SweepStore, broadcast Broadcaster, clock clockwork.Clock) *Sweeper {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Sweeper{
		store:     store,
		broadcast: broadcast,
		clock:     clock,
		tick:      DefaultTick,
		horizon:   DefaultHorizon,
		resync:    make(chan struct{}, 1),
	}
}

// Resync forces an immediate sweep and timer re-arm.  Mutation handlers
// call it after any schedule create/update/delete; redundant calls coalesce.
func (s *Sweeper) Resync() {
	select {
	case s.resync <- struct{}{}:
	default:
	}
}

// Run sweeps until ctx is cancelled.  It blocks and is meant to be started
// as a goroutine from main.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		sessions := s.sweep(ctx)

		var (
			boundary clockwork.Timer
			fire     <-chan time.Time
		)
		if d, ok := s.nextDelay(sessions); ok {
			boundary = s.clock.NewTimer(d)
			fire = boundary.Chan()
		}

		select {
		case <-ctx.Done():
			if boundary != nil {
				boundary.Stop()
			}
			return
		case <-ticker.Chan():
		case <-fire:
		case <-s.resync:
		}
		if boundary != nil {
			boundary.Stop()
		}
	}
}

// sweep loads unfinished sessions, persists every status flip the clock
// implies, and broadcasts the flipped records.  Persistence errors are
// logged and the session left for the next pass.
func (s *Sweeper) sweep(ctx context.Context) []model.Session {
	sessions, err := s.store.ListUnfinished(ctx)
	if err != nil {
		log.Error().Err(err).Msg("status sweep: list failed")
		return nil
	}
	now := s.clock.Now().UTC()
	for i := range sessions {
		derived := Derive(sessions[i], now)
		if derived == sessions[i].Status {
			continue
		}
		if err := s.store.SetStatus(ctx, sessions[i].ID, derived); err != nil {
			log.Error().Err(err).Uint64("session_id", sessions[i].ID).Msg("status sweep: update failed")
			continue
		}
		sessions[i].Status = derived
		log.Info().Uint64("session_id", sessions[i].ID).Str("status", string(derived)).Msg("session status flipped")
		if s.broadcast != nil {
			s.broadcast.Emit(realtime.ScheduleUpdate, sessions[i])
		}
	}
	return sessions
}

// nextDelay computes how long until the earliest transition boundary among
// the given sessions.  Boundaries beyond the horizon (or in the past, which
// the next sweep handles anyway) report false so no timer is armed.
func (s *Sweeper) nextDelay(sessions []model.Session) (time.Duration, bool) {
	now := s.clock.Now().UTC()
	var earliest time.Time
	for _, sess := range sessions {
		b, ok := NextBoundary(sess, now)
		if !ok {
			continue
		}
		if earliest.IsZero() || b.Before(earliest) {
			earliest = b
		}
	}
	if earliest.IsZero() {
		return 0, false
	}
	d := earliest.Sub(now)
	if d <= 0 || d >= s.horizon {
		return 0, false
	}
	return d, true
}
