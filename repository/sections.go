package repository

import (
	"context"
	"database/sql"
	"fmt"

	"aukra/apperr"
	"aukra/models"
)

func (s *Store) Section(ctx context.Context, id int64) (models.Section, error) {
	var sec models.Section
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, display_order, icon
		FROM sections WHERE id = $1`, id).
		Scan(&sec.ID, &sec.Name, &sec.Description, &sec.DisplayOrder, &sec.Icon)
	return sec, translate(err, "category")
}

// CreateSection inserts a section. A duplicate name is a conflict.
func (s *Store) CreateSection(ctx context.Context, sec models.Section) (models.Section, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkNameFree(ctx, tx, sec.Name, 0); err != nil {
			return err
		}
		err := tx.QueryRowContext(ctx, `
			INSERT INTO sections (name, description, display_order, icon)
			VALUES ($1, $2, $3, $4)
			RETURNING id`, sec.Name, sec.Description, sec.DisplayOrder, sec.Icon).Scan(&sec.ID)
		return translate(err, "category")
	})
	return sec, err
}

// UpdateSection overwrites a section. Renaming onto another section's name
// is a conflict.
func (s *Store) UpdateSection(ctx context.Context, sec models.Section) (models.Section, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := lockSection(ctx, tx, sec.ID); err != nil {
			return err
		}
		if err := checkNameFree(ctx, tx, sec.Name, sec.ID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE sections SET name = $2, description = $3, display_order = $4, icon = $5
			WHERE id = $1`, sec.ID, sec.Name, sec.Description, sec.DisplayOrder, sec.Icon)
		return translate(err, "category")
	})
	return sec, err
}

// DeleteSection removes an empty section. Sections that still list dishes
// cannot be deleted.
func (s *Store) DeleteSection(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := lockSection(ctx, tx, id); err != nil {
			return err
		}
		var n int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM section_items WHERE section_id = $1`, id).Scan(&n); err != nil {
			return translate(err, "category")
		}
		if n > 0 {
			return apperr.Dependency(fmt.Sprintf("category still has %d dishes", n))
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM sections WHERE id = $1`, id)
		return translate(err, "category")
	})
}

func lockSection(ctx context.Context, tx *sql.Tx, id int64) error {
	var got int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM sections WHERE id = $1 FOR UPDATE`, id).Scan(&got)
	return translate(err, "category")
}

func checkNameFree(ctx context.Context, tx *sql.Tx, name string, exceptID int64) error {
	var taken bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM sections WHERE name = $1 AND id <> $2)`, name, exceptID).Scan(&taken)
	if err != nil {
		return translate(err, "category")
	}
	if taken {
		return apperr.Conflict(fmt.Sprintf("category %q already exists", name))
	}
	return nil
}
