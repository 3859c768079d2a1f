package model

import "time"

// Hall represents a physical venue hosting conference sessions.  The short
// code is unique and stored upper-cased; it is what badges and signage use
// to point attendees at a room.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – human readable hall name.
//  Code      – unique short code (e.g. "MH", "A1").
//  Capacity  – number of seats in the hall.
//  Location  – physical location description.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hall struct {
	ID        uint64    `json:"id"`        // halls.id
	Name      string    `json:"name"`      // halls.name
	Code      string    `json:"code"`      // halls.code (unique, uppercase)
	Capacity  uint32    `json:"capacity"`  // halls.capacity
	Location  string    `json:"location"`  // halls.location
	CreatedAt time.Time `json:"createdAt"` // halls.created_at
	UpdatedAt time.Time `json:"updatedAt"` // halls.updated_at
}

// HallRef is the compact hall view embedded in session payloads and hall
// status responses.
type HallRef struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Location string `json:"location"`
}

// Ref returns the embeddable view of the hall.
func (h Hall) Ref() HallRef {
	return HallRef{ID: h.ID, Name: h.Name, Code: h.Code, Location: h.Location}
}

// HallStatus is the derived, never persisted view of a hall at one instant:
// the session running right now, the soonest session still to start, and the
// whole minutes left in the current session.  TimeRemaining is nil when no
// session is running and never negative.
type HallStatus struct {
	Hall          HallRef  `json:"hall"`
	Current       *Session `json:"current"`
	Next          *Session `json:"next"`
	TimeRemaining *int     `json:"timeRemaining"`
}
