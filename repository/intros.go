package repository

import (
	"context"
	"database/sql"

	"aukra/apperr"
	"aukra/models"
)

// IntroOrder assigns a display position to one intro block.
type IntroOrder struct {
	ID           int64 `json:"id"`
	DisplayOrder int   `json:"display_order"`
}

// Intros returns intro blocks ordered by display_order. With activeOnly
// set, inactive blocks are left out.
func (s *Store) Intros(ctx context.Context, activeOnly bool) ([]models.IntroBlock, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, display_order, is_active, intro_type, title_align, content_align
		FROM restaurant_intros
		WHERE is_active OR NOT $1
		ORDER BY display_order, id`, activeOnly)
	if err != nil {
		return nil, translate(err, "intros")
	}
	defer rows.Close()

	intros := []models.IntroBlock{}
	for rows.Next() {
		var b models.IntroBlock
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.DisplayOrder, &b.IsActive,
			&b.IntroType, &b.TitleAlign, &b.ContentAlign); err != nil {
			return nil, translate(err, "intros")
		}
		intros = append(intros, b)
	}
	return intros, translate(rows.Err(), "intros")
}

func (s *Store) CreateIntro(ctx context.Context, b models.IntroBlock) (models.IntroBlock, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO restaurant_intros (title, content, display_order, is_active, intro_type, title_align, content_align)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		b.Title, b.Content, b.DisplayOrder, b.IsActive, b.IntroType, b.TitleAlign, b.ContentAlign).Scan(&b.ID)
	return b, translate(err, "intro")
}

func (s *Store) UpdateIntro(ctx context.Context, b models.IntroBlock) (models.IntroBlock, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE restaurant_intros
		SET title = $2, content = $3, display_order = $4, is_active = $5,
		    intro_type = $6, title_align = $7, content_align = $8
		WHERE id = $1`,
		b.ID, b.Title, b.Content, b.DisplayOrder, b.IsActive, b.IntroType, b.TitleAlign, b.ContentAlign)
	if err != nil {
		return b, translate(err, "intro")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return b, apperr.NotFound("intro not found")
	}
	return b, nil
}

func (s *Store) DeleteIntro(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM restaurant_intros WHERE id = $1`, id)
	if err != nil {
		return translate(err, "intro")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("intro not found")
	}
	return nil
}

// ReorderIntros applies all positions or none.
func (s *Store) ReorderIntros(ctx context.Context, order []IntroOrder) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `UPDATE restaurant_intros SET display_order = $2 WHERE id = $1`)
		if err != nil {
			return translate(err, "intro")
		}
		defer stmt.Close()
		for _, o := range order {
			res, err := stmt.ExecContext(ctx, o.ID, o.DisplayOrder)
			if err != nil {
				return translate(err, "intro")
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return apperr.NotFound("intro not found")
			}
		}
		return nil
	})
}
