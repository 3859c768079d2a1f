package model

import "time"

// Announcement kinds and priorities as accepted at the API boundary.
const (
	AnnouncementTypeGeneral   = "announcement"
	AnnouncementTypeAlert     = "alert"
	AnnouncementTypeTransport = "transport"
	AnnouncementTypeDinner    = "dinner"
	AnnouncementTypeCultural  = "cultural"
)

const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidAnnouncementType reports whether t is a known announcement type.
func ValidAnnouncementType(t string) bool {
	switch t {
	case AnnouncementTypeGeneral, AnnouncementTypeAlert, AnnouncementTypeTransport,
		AnnouncementTypeDinner, AnnouncementTypeCultural:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known announcement priority.
func ValidPriority(p string) bool {
	return p == PriorityNormal || p == PriorityHigh || p == PriorityUrgent
}

// Announcement is a broadcast notice shown on the home feed.  Link and File
// are optional attachments; CreatedBy records the publishing user.
type Announcement struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Priority  string    `json:"priority"`
	Content   string    `json:"content"`
	Link      *string   `json:"link,omitempty"`
	File      *string   `json:"file,omitempty"`
	CreatedBy uint64    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
