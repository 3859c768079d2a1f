package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/conference-companion/internal/model"
)

// ComplaintRepo manages persistence for attendee complaints.
type ComplaintRepo struct {
	db *sql.DB
}

// NewComplaintRepo constructs a ComplaintRepo with the given DB handle.
func NewComplaintRepo(db *sql.DB) *ComplaintRepo {
	return &ComplaintRepo{db: db}
}

const complaintCols = `id, category, priority, title, description, contact_email, contact_phone,
       attachments, status, assigned_to, response, created_at, updated_at`

func scanComplaint(row interface{ Scan(...any) error }) (*model.Complaint, error) {
	var (
		c           model.Complaint
		email       sql.NullString
		phone       sql.NullString
		attachments string
		assignedTo  sql.NullInt64
		response    sql.NullString
	)
	err := row.Scan(&c.ID, &c.Category, &c.Priority, &c.Title, &c.Description, &email, &phone,
		&attachments, &c.Status, &assignedTo, &response, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if email.Valid {
		c.ContactEmail = &email.String
	}
	if phone.Valid {
		c.ContactPhone = &phone.String
	}
	c.Attachments = decodeList(attachments)
	if assignedTo.Valid {
		v := uint64(assignedTo.Int64)
		c.AssignedTo = &v
	}
	if response.Valid {
		c.Response = &response.String
	}
	return &c, nil
}

// ComplaintFilter narrows List results; empty fields mean "no filter".
type ComplaintFilter struct {
	Status   string
	Category string
	Priority string
}

// Create inserts a complaint (status defaults to pending at the schema
// level) and reads it back.
func (r *ComplaintRepo) Create(ctx context.Context, c *model.Complaint) error {
	attachments, err := encodeList(c.Attachments)
	if err != nil {
		return err
	}
	const q = `INSERT INTO complaints (category, priority, title, description, contact_email, contact_phone, attachments)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Category, c.Priority, c.Title, c.Description,
		c.ContactEmail, c.ContactPhone, attachments)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	got, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *got
	return nil
}

// GetByID returns one complaint or ErrComplaintNotFound.
func (r *ComplaintRepo) GetByID(ctx context.Context, id uint64) (*model.Complaint, error) {
	c, err := scanComplaint(r.db.QueryRowContext(ctx,
		`SELECT `+complaintCols+` FROM complaints WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrComplaintNotFound
	}
	return c, err
}

// List returns complaints newest first, filtered by status/category/priority.
func (r *ComplaintRepo) List(ctx context.Context, f ComplaintFilter) ([]model.Complaint, error) {
	q := `SELECT ` + complaintCols + ` FROM complaints WHERE 1=1`
	var args []any
	if f.Status != "" {
		q += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.Category != "" {
		q += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Priority != "" {
		q += ` AND priority = ?`
		args = append(args, f.Priority)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// ListPublic returns the sanitized complaint view for the guest status
// board, newest first.
func (r *ComplaintRepo) ListPublic(ctx context.Context) ([]model.PublicComplaint, error) {
	const q = `SELECT id, category, priority, status, created_at FROM complaints ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PublicComplaint
	for rows.Next() {
		var c model.PublicComplaint
		if err := rows.Scan(&c.ID, &c.Category, &c.Priority, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update rewrites the staff-controlled fields of a complaint.
func (r *ComplaintRepo) Update(ctx context.Context, c *model.Complaint) error {
	const q = `UPDATE complaints
               SET category = ?, priority = ?, title = ?, description = ?, status = ?,
                   assigned_to = ?, response = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, c.Category, c.Priority, c.Title, c.Description,
		c.Status, c.AssignedTo, c.Response, c.ID)
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *got
	return nil
}

// Delete removes a complaint by ID.
func (r *ComplaintRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM complaints WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrComplaintNotFound
	}
	return nil
}
