package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/conference-companion/internal/model"
)

// HallRepo provides methods to create and retrieve halls.  It embeds a
// database handle to perform queries and commands.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

const hallCols = `id, name, code, capacity, location, created_at, updated_at`

func scanHall(row interface{ Scan(...any) error }) (*model.Hall, error) {
	var h model.Hall
	if err := row.Scan(&h.ID, &h.Name, &h.Code, &h.Capacity, &h.Location, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

// Create inserts a new hall.  The code is stored upper-cased and must be
// unique; a duplicate code surfaces as ErrHallCodeExists.  After insert the
// row is read back so timestamps are populated.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	h.Code = strings.ToUpper(strings.TrimSpace(h.Code))
	const qInsert = `INSERT INTO halls (name, code, capacity, location) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, h.Name, h.Code, h.Capacity, h.Location)
	if err != nil {
		if isDuplicate(err) {
			return ErrHallCodeExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)

	got, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = *got
	return nil
}

// GetByID retrieves a hall by its ID.  It returns ErrHallNotFound when no
// row is found.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	h, err := scanHall(r.db.QueryRowContext(ctx, `SELECT `+hallCols+` FROM halls WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHallNotFound
	}
	return h, err
}

// List returns all halls ordered by code.
func (r *HallRepo) List(ctx context.Context) ([]model.Hall, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+hallCols+` FROM halls ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Hall
	for rows.Next() {
		h, err := scanHall(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

// Update rewrites hall fields.  Returns ErrHallNotFound when the row does
// not exist and ErrHallCodeExists when the new code collides.
func (r *HallRepo) Update(ctx context.Context, h *model.Hall) error {
	h.Code = strings.ToUpper(strings.TrimSpace(h.Code))
	const q = `UPDATE halls
               SET name = ?, code = ?, capacity = ?, location = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.Code, h.Capacity, h.Location, h.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrHallCodeExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also 0 for a no-op update; confirm existence.
		if _, err := r.GetByID(ctx, h.ID); err != nil {
			return err
		}
	}
	got, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = *got
	return nil
}

// Delete removes a hall by ID.  Sessions referencing it cascade at the
// schema level.
func (r *HallRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM halls WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHallNotFound
	}
	return nil
}
