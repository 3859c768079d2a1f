package model

import (
	"strings"
	"time"
)

// EventType tags a social event.  Dinner and cultural are the well-known
// kinds; anything else is carried as a custom tag.  NormalizeEventType is
// the single place custom values are validated, so the stored column never
// holds untrimmed or empty strings.
type EventType struct {
	Known  string // one of the EventKind* constants, empty for custom types
	Custom string // the custom tag when Known is empty
}

const (
	EventKindDinner   = "dinner"
	EventKindCultural = "cultural"
)

// NormalizeEventType parses a raw type string into an EventType.  Known
// kinds are matched case-insensitively; everything else becomes a custom
// tag.  An empty or blank value is rejected.
func NormalizeEventType(raw string) (EventType, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return EventType{}, false
	}
	switch s {
	case EventKindDinner, EventKindCultural:
		return EventType{Known: s}, true
	}
	return EventType{Custom: s}, true
}

// String returns the wire/storage form of the event type.
func (t EventType) String() string {
	if t.Known != "" {
		return t.Known
	}
	return t.Custom
}

// IsCustom reports whether the type is outside the well-known set.
func (t EventType) IsCustom() bool { return t.Known == "" }

// Event is a social event (conference dinner, cultural evening, ...).
// Unlike sessions, events are not tied to a hall and carry their venue as
// free text.
type Event struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	Venue        string    `json:"venue"`
	StartsAt     time.Time `json:"startTime"`
	EndsAt       time.Time `json:"endTime"`
	RSVPRequired bool      `json:"rsvpRequired"`
	TicketInfo   *string   `json:"ticketInfo,omitempty"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
