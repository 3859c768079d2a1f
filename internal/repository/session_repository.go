// Session persistence.  Sessions live in the `schedules` table and are
// always read joined to their hall so responses can embed the compact hall
// view.  Time columns are DATETIME in UTC (parseTime=true on the DSN maps
// them to time.Time).
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/conference-companion/internal/model"
)

// SessionRepo manages persistence for conference sessions.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo constructs a SessionRepo with the given DB handle.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

const sessionCols = `s.id, s.title, s.authors, s.hall_id, s.starts_at, s.ends_at, s.status,
       s.tags, s.slide_link, s.description, s.is_plenary, s.created_at, s.updated_at,
       h.name, h.code, h.location`

const sessionFrom = ` FROM schedules s JOIN halls h ON h.id = s.hall_id `

func scanSession(row interface{ Scan(...any) error }) (*model.Session, error) {
	var (
		s         model.Session
		tags      string
		slideLink sql.NullString
		desc      sql.NullString
		ref       model.HallRef
	)
	err := row.Scan(&s.ID, &s.Title, &s.Authors, &s.HallID, &s.StartsAt, &s.EndsAt, &s.Status,
		&tags, &slideLink, &desc, &s.IsPlenary, &s.CreatedAt, &s.UpdatedAt,
		&ref.Name, &ref.Code, &ref.Location)
	if err != nil {
		return nil, err
	}
	s.Tags = decodeList(tags)
	if slideLink.Valid {
		s.SlideLink = &slideLink.String
	}
	if desc.Valid {
		s.Description = &desc.String
	}
	ref.ID = s.HallID
	s.Hall = &ref
	return &s, nil
}

// SessionFilter narrows List results.  Zero values mean "no filter".  Day
// restricts starts_at to the given calendar day (UTC).  Tags matches
// sessions sharing at least one tag; the overlap test runs in Go because
// tags are stored as a JSON list.
type SessionFilter struct {
	HallID uint64
	Status model.SessionStatus
	Day    time.Time
	Tags   []string
}

// Create inserts a new session and reads the row back so defaults and
// timestamps are populated.
func (r *SessionRepo) Create(ctx context.Context, s *model.Session) error {
	tags, err := encodeList(s.Tags)
	if err != nil {
		return err
	}
	const q = `INSERT INTO schedules (title, authors, hall_id, starts_at, ends_at, status, tags, slide_link, description, is_plenary)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Title, s.Authors, s.HallID, s.StartsAt.UTC(), s.EndsAt.UTC(),
		s.Status, tags, s.SlideLink, s.Description, s.IsPlenary)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)

	got, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = *got
	return nil
}

// GetByID retrieves a session (hall populated).  Returns ErrSessionNotFound
// when there is no matching row.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx, `SELECT `+sessionCols+sessionFrom+`WHERE s.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	return s, err
}

// List returns sessions matching the filter ordered by start time.
func (r *SessionRepo) List(ctx context.Context, f SessionFilter) ([]model.Session, error) {
	q := `SELECT ` + sessionCols + sessionFrom + `WHERE 1=1`
	var args []any
	if f.HallID != 0 {
		q += ` AND s.hall_id = ?`
		args = append(args, f.HallID)
	}
	if f.Status != "" {
		q += ` AND s.status = ?`
		args = append(args, f.Status)
	}
	if !f.Day.IsZero() {
		dayStart := time.Date(f.Day.Year(), f.Day.Month(), f.Day.Day(), 0, 0, 0, 0, time.UTC)
		q += ` AND s.starts_at >= ? AND s.starts_at < ?`
		args = append(args, dayStart, dayStart.Add(24*time.Hour))
	}
	q += ` ORDER BY s.starts_at`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		if len(f.Tags) > 0 && !hasAnyTag(s.Tags, f.Tags) {
			continue
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// CurrentForHall returns the non-cancelled session whose interval contains
// now (starts_at <= now < ends_at), or nil when the hall is idle.  When the
// data models an overlap the lowest id wins; overlaps are not guarded
// against.
func (r *SessionRepo) CurrentForHall(ctx context.Context, hallID uint64, now time.Time) (*model.Session, error) {
	const q = `SELECT ` + sessionCols + sessionFrom + `
               WHERE s.hall_id = ? AND s.status <> 'cancelled' AND s.starts_at <= ? AND s.ends_at > ?
               ORDER BY s.id LIMIT 1`
	s, err := scanSession(r.db.QueryRowContext(ctx, q, hallID, now.UTC(), now.UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// NextForHall returns the soonest non-cancelled session starting strictly
// after now, or nil when nothing further is scheduled.
func (r *SessionRepo) NextForHall(ctx context.Context, hallID uint64, now time.Time) (*model.Session, error) {
	const q = `SELECT ` + sessionCols + sessionFrom + `
               WHERE s.hall_id = ? AND s.status <> 'cancelled' AND s.starts_at > ?
               ORDER BY s.starts_at LIMIT 1`
	s, err := scanSession(r.db.QueryRowContext(ctx, q, hallID, now.UTC()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// ListUnfinished returns sessions the status sweeper still cares about:
// everything not yet completed and not cancelled.
func (r *SessionRepo) ListUnfinished(ctx context.Context) ([]model.Session, error) {
	const q = `SELECT ` + sessionCols + sessionFrom + `
               WHERE s.status NOT IN ('cancelled', 'completed')
               ORDER BY s.starts_at`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// SetStatus stores a new lifecycle tag for a session.
func (r *SessionRepo) SetStatus(ctx context.Context, id uint64, status model.SessionStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE schedules SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Update rewrites a session row.  The caller sends the full desired state
// (handlers merge partial bodies onto the loaded record first); concurrent
// editors therefore race last-write-wins.
func (r *SessionRepo) Update(ctx context.Context, s *model.Session) error {
	tags, err := encodeList(s.Tags)
	if err != nil {
		return err
	}
	const q = `UPDATE schedules
               SET title = ?, authors = ?, hall_id = ?, starts_at = ?, ends_at = ?, status = ?,
                   tags = ?, slide_link = ?, description = ?, is_plenary = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	_, err = r.db.ExecContext(ctx, q, s.Title, s.Authors, s.HallID, s.StartsAt.UTC(), s.EndsAt.UTC(),
		s.Status, tags, s.SlideLink, s.Description, s.IsPlenary, s.ID)
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = *got
	return nil
}

// Delete removes a session by ID.
func (r *SessionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
