// Package queue defines message payloads exchanged over the message broker.
package queue

import "encoding/json"

// AuditQueueName is the durable queue carrying audit trail entries from
// mutating request handlers to the consumer that persists them.
const AuditQueueName = "audit.log"

// AuditEvent is published after every successful (2xx) mutation.  It
// carries everything the consumer needs to append an audit_logs row
// without querying the primary database.
type AuditEvent struct {
	UserID       uint64          `json:"user_id"`
	Action       string          `json:"action"`
	ResourceType string          `json:"resource_type"`
	ResourceID   string          `json:"resource_id"`
	Changes      json.RawMessage `json:"changes"`
	IPAddress    string          `json:"ip_address"`
	UserAgent    string          `json:"user_agent"`
	OccurredAt   string          `json:"occurred_at"` // RFC3339, UTC
}
