package model

import "time"

// SessionStatus is the lifecycle tag of a session.  Every value except
// cancelled is derivable from the clock; cancelled is terminal and always
// wins over time math.
type SessionStatus string

const (
	StatusUpcoming  SessionStatus = "upcoming"
	StatusOngoing   SessionStatus = "ongoing"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
)

// ValidSessionStatus reports whether s is one of the known lifecycle tags.
func ValidSessionStatus(s SessionStatus) bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Session is a timed conference talk bound to a hall (the schedules table).
// Hall is populated on reads with the compact hall view; HallID is what the
// row actually stores.  Overlapping sessions within one hall are allowed
// (parallel tracks share a hall code with sub-locations).
//
// Fields:
//  ID          – primary key identifier.
//  Title       – talk title.
//  Authors     – free-form author/speaker line.
//  HallID      – hall hosting the session.
//  Hall        – populated hall reference (nil when not joined).
//  StartsAt    – session start instant (UTC).
//  EndsAt      – session end instant (UTC, after StartsAt).
//  Status      – persisted lifecycle tag, kept current by the status sweeper.
//  Tags        – free-form topic tags.
//  SlideLink   – optional external slide/material link.
//  Description – optional abstract.
//  IsPlenary   – marks plenary talks shown across all hall views.
type Session struct {
	ID          uint64        `json:"id"`
	Title       string        `json:"title"`
	Authors     string        `json:"authors"`
	HallID      uint64        `json:"hallId"`
	Hall        *HallRef      `json:"hall,omitempty"`
	StartsAt    time.Time     `json:"startTime"`
	EndsAt      time.Time     `json:"endTime"`
	Status      SessionStatus `json:"status"`
	Tags        []string      `json:"tags"`
	SlideLink   *string       `json:"slideLink,omitempty"`
	Description *string       `json:"description,omitempty"`
	IsPlenary   bool          `json:"isPlenary"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
