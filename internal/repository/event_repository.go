package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/conference-companion/internal/model"
)

// EventRepo manages persistence for social events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventCols = `id, title, type, description, venue, starts_at, ends_at, rsvp_required, ticket_info, image_url, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*model.Event, error) {
	var (
		e      model.Event
		ticket sql.NullString
		image  sql.NullString
	)
	err := row.Scan(&e.ID, &e.Title, &e.Type, &e.Description, &e.Venue, &e.StartsAt, &e.EndsAt,
		&e.RSVPRequired, &ticket, &image, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if ticket.Valid {
		e.TicketInfo = &ticket.String
	}
	if image.Valid {
		e.ImageURL = &image.String
	}
	return &e, nil
}

// Create inserts an event and reads it back.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events (title, type, description, venue, starts_at, ends_at, rsvp_required, ticket_info, image_url)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.Title, e.Type, e.Description, e.Venue,
		e.StartsAt.UTC(), e.EndsAt.UTC(), e.RSVPRequired, e.TicketInfo, e.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)

	got, err := r.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	*e = *got
	return nil
}

// GetByID returns one event or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, `SELECT `+eventCols+` FROM events WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return e, err
}

// List returns events ordered by start time, optionally filtered by type.
func (r *EventRepo) List(ctx context.Context, typ string) ([]model.Event, error) {
	q := `SELECT ` + eventCols + ` FROM events`
	var args []any
	if typ != "" {
		q += ` WHERE type = ?`
		args = append(args, typ)
	}
	q += ` ORDER BY starts_at`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// Update rewrites an event row.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	const q = `UPDATE events
               SET title = ?, type = ?, description = ?, venue = ?, starts_at = ?, ends_at = ?,
                   rsvp_required = ?, ticket_info = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, e.Title, e.Type, e.Description, e.Venue,
		e.StartsAt.UTC(), e.EndsAt.UTC(), e.RSVPRequired, e.TicketInfo, e.ImageURL, e.ID)
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	*e = *got
	return nil
}

// Delete removes an event by ID.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}
