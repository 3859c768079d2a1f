package model

import (
	"encoding/json"
	"time"
)

// AuditLog is one row of the append-only audit trail.  Changes holds the
// request body that produced the mutation, stored as raw JSON.
type AuditLog struct {
	ID           uint64          `json:"id"`
	UserID       uint64          `json:"userId"`
	Action       string          `json:"action"`
	ResourceType string          `json:"resourceType"`
	ResourceID   string          `json:"resourceId"`
	Changes      json.RawMessage `json:"changes"`
	IPAddress    string          `json:"ipAddress"`
	UserAgent    string          `json:"userAgent"`
	CreatedAt    time.Time       `json:"createdAt"`
}
