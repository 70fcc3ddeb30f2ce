package repository

import (
	"context"
	"database/sql"

	"aukra/models"
)

// Sections returns all sections ordered by display_order, then id.
func (s *Store) Sections(ctx context.Context) ([]models.Section, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, display_order, icon
		FROM sections
		ORDER BY display_order, id`)
	if err != nil {
		return nil, translate(err, "sections")
	}
	defer rows.Close()

	sections := []models.Section{}
	for rows.Next() {
		var sec models.Section
		if err := rows.Scan(&sec.ID, &sec.Name, &sec.Description, &sec.DisplayOrder, &sec.Icon); err != nil {
			return nil, translate(err, "sections")
		}
		sections = append(sections, sec)
	}
	return sections, translate(rows.Err(), "sections")
}

// SectionItems returns every section link with its dish joined. A link
// whose dish row is gone comes back with a nil Dish.
func (s *Store) SectionItems(ctx context.Context) ([]models.SectionItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT si.section_id, si.dish_id, si.order_index,
		       d.id, d.name, d.description, d.ingredients, d.image_url, d.best_seller, d.price
		FROM section_items si
		LEFT JOIN dishes d ON d.id = si.dish_id
		ORDER BY si.section_id, si.order_index`)
	if err != nil {
		return nil, translate(err, "section items")
	}
	defer rows.Close()

	var items []models.SectionItem
	for rows.Next() {
		var (
			it          models.SectionItem
			id, price   sql.NullInt64
			name, desc  sql.NullString
			ingredients sql.NullString
			imageURL    sql.NullString
			bestSeller  sql.NullBool
		)
		if err := rows.Scan(&it.SectionID, &it.DishID, &it.OrderIndex,
			&id, &name, &desc, &ingredients, &imageURL, &bestSeller, &price); err != nil {
			return nil, translate(err, "section items")
		}
		if id.Valid {
			it.Dish = &models.Dish{
				ID:          id.Int64,
				Name:        name.String,
				Description: desc.String,
				Ingredients: ingredients.String,
				ImageURL:    imageURL.String,
				BestSeller:  bestSeller.Bool,
				Price:       nullInt(price),
			}
		}
		items = append(items, it)
	}
	return items, translate(rows.Err(), "section items")
}

// Prices returns every price row.
func (s *Store) Prices(ctx context.Context) ([]models.PriceOption, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT dish_id, name, price FROM prices ORDER BY dish_id, id`)
	if err != nil {
		return nil, translate(err, "prices")
	}
	defer rows.Close()
	return scanPrices(rows)
}

// Dish returns one dish with its price rows and the section it is listed in.
func (s *Store) Dish(ctx context.Context, id int64) (models.Dish, error) {
	return dishByID(ctx, s.db, id)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func dishByID(ctx context.Context, q querier, id int64) (models.Dish, error) {
	var (
		d         models.Dish
		price     sql.NullInt64
		sectionID sql.NullInt64
	)
	err := q.QueryRowContext(ctx, `
		SELECT d.id, d.name, d.description, d.ingredients, d.image_url, d.best_seller, d.price,
		       (SELECT si.section_id FROM section_items si WHERE si.dish_id = d.id ORDER BY si.section_id LIMIT 1)
		FROM dishes d
		WHERE d.id = $1`, id).
		Scan(&d.ID, &d.Name, &d.Description, &d.Ingredients, &d.ImageURL, &d.BestSeller, &price, &sectionID)
	if err != nil {
		return models.Dish{}, translate(err, "dish")
	}
	d.Price = nullInt(price)
	d.SectionID = nullInt(sectionID)

	rows, err := q.QueryContext(ctx, `SELECT dish_id, name, price FROM prices WHERE dish_id = $1 ORDER BY id`, id)
	if err != nil {
		return models.Dish{}, translate(err, "prices")
	}
	defer rows.Close()
	if d.Prices, err = scanPrices(rows); err != nil {
		return models.Dish{}, err
	}
	return d, nil
}

func scanPrices(rows *sql.Rows) ([]models.PriceOption, error) {
	var prices []models.PriceOption
	for rows.Next() {
		var p models.PriceOption
		if err := rows.Scan(&p.DishID, &p.Name, &p.Price); err != nil {
			return nil, translate(err, "prices")
		}
		prices = append(prices, p)
	}
	return prices, translate(rows.Err(), "prices")
}

func nullInt(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
