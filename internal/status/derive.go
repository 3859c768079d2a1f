// Package status owns the temporal logic of the application: deriving a
// session's lifecycle tag from the clock, resolving the live view of each
// hall, and sweeping persisted statuses across transition boundaries.
package status

import (
	"time"

	"github.com/iliyamo/conference-companion/internal/model"
)

// Derive computes the lifecycle tag of a session at the given instant.
// Cancellation is terminal and always wins over time math; otherwise the
// tag follows wall-clock position, inclusive on both interval ends
// (now == start and now == end both count as ongoing).
func Derive(s model.Session, now time.Time) model.SessionStatus {
	if s.Status == model.StatusCancelled {
		return model.StatusCancelled
	}
	if now.Before(s.StartsAt) {
		return model.StatusUpcoming
	}
	if !now.After(s.EndsAt) {
		return model.StatusOngoing
	}
	return model.StatusCompleted
}

// NextBoundary returns the instant at which the session's derived status
// changes next: its start when still upcoming, its end while it runs.
// The second return is false for cancelled or already completed sessions,
// which have no further transitions.
func NextBoundary(s model.Session, now time.Time) (time.Time, bool) {
	switch Derive(s, now) {
	case model.StatusUpcoming:
		return s.StartsAt, true
	case model.StatusOngoing:
		return s.EndsAt, true
	}
	return time.Time{}, false
}
