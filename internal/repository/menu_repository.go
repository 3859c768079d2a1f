package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/conference-companion/internal/model"
)

// MenuRepo manages persistence for daily meal menus.  The (day, meal_type)
// pair carries a unique index; collisions surface as ErrMenuSlotExists.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo constructs a MenuRepo with the given DB handle.
func NewMenuRepo(db *sql.DB) *MenuRepo {
	return &MenuRepo{db: db}
}

const menuCols = `id, day, meal_type, items, description, created_at, updated_at`

func scanMenu(row interface{ Scan(...any) error }) (*model.Menu, error) {
	var (
		m     model.Menu
		items string
		desc  sql.NullString
	)
	if err := row.Scan(&m.ID, &m.Day, &m.MealType, &items, &desc, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Items = decodeList(items)
	if desc.Valid {
		m.Description = &desc.String
	}
	return &m, nil
}

// Create inserts a menu and reads it back.
func (r *MenuRepo) Create(ctx context.Context, m *model.Menu) error {
	items, err := encodeList(m.Items)
	if err != nil {
		return err
	}
	const q = `INSERT INTO menus (day, meal_type, items, description) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Day, m.MealType, items, m.Description)
	if err != nil {
		if isDuplicate(err) {
			return ErrMenuSlotExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	got, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = *got
	return nil
}

// GetByID returns one menu or ErrMenuNotFound.
func (r *MenuRepo) GetByID(ctx context.Context, id uint64) (*model.Menu, error) {
	m, err := scanMenu(r.db.QueryRowContext(ctx, `SELECT `+menuCols+` FROM menus WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMenuNotFound
	}
	return m, err
}

// List returns menus ordered by day then meal, optionally filtered by day
// (0 means all days).
func (r *MenuRepo) List(ctx context.Context, day uint8) ([]model.Menu, error) {
	q := `SELECT ` + menuCols + ` FROM menus`
	var args []any
	if day != 0 {
		q += ` WHERE day = ?`
		args = append(args, day)
	}
	q += ` ORDER BY day, FIELD(meal_type, 'breakfast', 'lunch', 'tea')`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Menu
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// Update rewrites a menu row.  Moving a menu onto an occupied (day, meal)
// slot surfaces as ErrMenuSlotExists.
func (r *MenuRepo) Update(ctx context.Context, m *model.Menu) error {
	items, err := encodeList(m.Items)
	if err != nil {
		return err
	}
	const q = `UPDATE menus
               SET day = ?, meal_type = ?, items = ?, description = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	_, err = r.db.ExecContext(ctx, q, m.Day, m.MealType, items, m.Description, m.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrMenuSlotExists
		}
		return err
	}
	got, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = *got
	return nil
}

// Delete removes a menu by ID.
func (r *MenuRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menus WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMenuNotFound
	}
	return nil
}
