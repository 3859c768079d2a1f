package model

import "time"

// Complaint categories, priorities and workflow states.
const (
	ComplaintCategoryTransport    = "transport"
	ComplaintCategoryGuesthouse   = "guesthouse"
	ComplaintCategoryCleaning     = "cleaning"
	ComplaintCategoryPresentation = "presentation"
	ComplaintCategoryOther        = "other"
)

const (
	ComplaintPriorityLow    = "low"
	ComplaintPriorityMedium = "medium"
	ComplaintPriorityHigh   = "high"
)

const (
	ComplaintStatusPending    = "pending"
	ComplaintStatusAssigned   = "assigned"
	ComplaintStatusInProgress = "in-progress"
	ComplaintStatusResolved   = "resolved"
	ComplaintStatusClosed     = "closed"
)

// ValidComplaintCategory reports whether c is a known complaint category.
func ValidComplaintCategory(c string) bool {
	switch c {
	case ComplaintCategoryTransport, ComplaintCategoryGuesthouse, ComplaintCategoryCleaning,
		ComplaintCategoryPresentation, ComplaintCategoryOther:
		return true
	}
	return false
}

// ValidComplaintPriority reports whether p is a known complaint priority.
func ValidComplaintPriority(p string) bool {
	return p == ComplaintPriorityLow || p == ComplaintPriorityMedium || p == ComplaintPriorityHigh
}

// ValidComplaintStatus reports whether s is a known workflow state.
func ValidComplaintStatus(s string) bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusAssigned, ComplaintStatusInProgress,
		ComplaintStatusResolved, ComplaintStatusClosed:
		return true
	}
	return false
}

// Complaint is an attendee-submitted issue report.  Submission is open to
// guests, so contact details are optional; AssignedTo and Response are set
// by staff as the complaint moves through the workflow.
type Complaint struct {
	ID           uint64    `json:"id"`
	Category     string    `json:"category"`
	Priority     string    `json:"priority"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ContactEmail *string   `json:"contactEmail,omitempty"`
	ContactPhone *string   `json:"contactPhone,omitempty"`
	Attachments  []string  `json:"attachments"`
	Status       string    `json:"status"`
	AssignedTo   *uint64   `json:"assignedTo,omitempty"`
	Response     *string   `json:"response,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicComplaint is the sanitized view returned on the unauthenticated
// endpoint: enough to show a status board, nothing personal.
type PublicComplaint struct {
	ID        uint64    `json:"id"`
	Category  string    `json:"category"`
	Priority  string    `json:"priority"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
