package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/conference-companion/internal/model"
)

// AuditRepo appends to and reads the audit_logs table.  Writes come from
// the queue consumer, never directly from request handlers.
type AuditRepo struct {
	db *sql.DB
}

// NewAuditRepo constructs an AuditRepo with the given DB handle.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Insert appends one audit entry.
func (r *AuditRepo) Insert(ctx context.Context, a *model.AuditLog) error {
	const q = `INSERT INTO audit_logs (user_id, action, resource_type, resource_id, changes, ip_address, user_agent, created_at)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	changes := "{}"
	if len(a.Changes) > 0 {
		changes = string(a.Changes)
	}
	res, err := r.db.ExecContext(ctx, q, a.UserID, a.Action, a.ResourceType, a.ResourceID,
		changes, a.IPAddress, a.UserAgent, a.CreatedAt.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// List pages the trail newest first.  limit is clamped to [1,200].
func (r *AuditRepo) List(ctx context.Context, limit, offset int) ([]model.AuditLog, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const q = `SELECT id, user_id, action, resource_type, resource_id, changes, ip_address, user_agent, created_at
               FROM audit_logs ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AuditLog
	for rows.Next() {
		var (
			a       model.AuditLog
			changes string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.ResourceType, &a.ResourceID,
			&changes, &a.IPAddress, &a.UserAgent, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Changes = []byte(changes)
		out = append(out, a)
	}
	return out, rows.Err()
}
