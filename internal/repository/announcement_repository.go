package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/conference-companion/internal/model"
)

// AnnouncementRepo manages persistence for announcements.
type AnnouncementRepo struct {
	db *sql.DB
}

// NewAnnouncementRepo constructs an AnnouncementRepo with the given DB handle.
func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo {
	return &AnnouncementRepo{db: db}
}

const announcementCols = `id, title, type, priority, content, link, file, created_by, created_at, updated_at`

func scanAnnouncement(row interface{ Scan(...any) error }) (*model.Announcement, error) {
	var (
		a    model.Announcement
		link sql.NullString
		file sql.NullString
	)
	err := row.Scan(&a.ID, &a.Title, &a.Type, &a.Priority, &a.Content, &link, &file,
		&a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if link.Valid {
		a.Link = &link.String
	}
	if file.Valid {
		a.File = &file.String
	}
	return &a, nil
}

// Create inserts an announcement and reads it back.
func (r *AnnouncementRepo) Create(ctx context.Context, a *model.Announcement) error {
	const q = `INSERT INTO announcements (title, type, priority, content, link, file, created_by)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Title, a.Type, a.Priority, a.Content, a.Link, a.File, a.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)

	got, err := r.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = *got
	return nil
}

// GetByID returns one announcement or ErrAnnouncementNotFound.
func (r *AnnouncementRepo) GetByID(ctx context.Context, id uint64) (*model.Announcement, error) {
	a, err := scanAnnouncement(r.db.QueryRowContext(ctx,
		`SELECT `+announcementCols+` FROM announcements WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAnnouncementNotFound
	}
	return a, err
}

// List returns announcements newest first, optionally filtered by type.
func (r *AnnouncementRepo) List(ctx context.Context, typ string) ([]model.Announcement, error) {
	q := `SELECT ` + announcementCols + ` FROM announcements`
	var args []any
	if typ != "" {
		q += ` WHERE type = ?`
		args = append(args, typ)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// Update rewrites an announcement row.
func (r *AnnouncementRepo) Update(ctx context.Context, a *model.Announcement) error {
	const q = `UPDATE announcements
               SET title = ?, type = ?, priority = ?, content = ?, link = ?, file = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, a.Title, a.Type, a.Priority, a.Content, a.Link, a.File, a.ID)
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = *got
	return nil
}

// Delete removes an announcement by ID.
func (r *AnnouncementRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}
