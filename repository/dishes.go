package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aukra/apperr"
	"aukra/models"
)

// DishInput carries the writable fields of a dish. Prices must already be
// validated and non-empty. Category is a section name; on update an empty
// Category keeps the dish where it is.
type DishInput struct {
	Name        string
	Description string
	Ingredients string
	ImageURL    string
	BestSeller  bool
	Prices      []models.PriceOption
	Category    string
}

// CreateDish inserts the dish and its prices and appends it to the end of
// its category.
func (s *Store) CreateDish(ctx context.Context, in DishInput) (models.Dish, error) {
	var d models.Dish
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		sectionID, err := sectionIDByName(ctx, tx, in.Category)
		if err != nil {
			return err
		}

		var id int64
		err = tx.QueryRowContext(ctx, `
			INSERT INTO dishes (name, description, ingredients, image_url, best_seller, price)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			in.Name, in.Description, in.Ingredients, in.ImageURL, in.BestSeller, flatPrice(in.Prices)).Scan(&id)
		if err != nil {
			return translate(err, "dish")
		}
		if err := insertPrices(ctx, tx, id, in.Prices); err != nil {
			return err
		}
		if err := appendToSection(ctx, tx, sectionID, id); err != nil {
			return err
		}
		d, err = dishByID(ctx, tx, id)
		return err
	})
	return d, err
}

// UpdateDish replaces the dish fields and prices, moving it to another
// category when Category names a different section.
func (s *Store) UpdateDish(ctx context.Context, id int64, in DishInput) (models.Dish, error) {
	var d models.Dish
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE dishes
			SET name = $2, description = $3, ingredients = $4, image_url = $5, best_seller = $6, price = $7
			WHERE id = $1`,
			id, in.Name, in.Description, in.Ingredients, in.ImageURL, in.BestSeller, flatPrice(in.Prices))
		if err != nil {
			return translate(err, "dish")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperr.NotFound("dish not found")
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM prices WHERE dish_id = $1`, id); err != nil {
			return translate(err, "prices")
		}
		if err := insertPrices(ctx, tx, id, in.Prices); err != nil {
			return err
		}

		if in.Category != "" {
			if err := moveToSection(ctx, tx, id, in.Category); err != nil {
				return err
			}
		}
		d, err = dishByID(ctx, tx, id)
		return err
	})
	return d, err
}

// DeleteDish removes the dish with its section links and prices. It returns
// the dish's image URL so the caller can clean up storage.
func (s *Store) DeleteDish(ctx context.Context, id int64) (string, error) {
	var imageURL string
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT image_url FROM dishes WHERE id = $1 FOR UPDATE`, id).Scan(&imageURL)
		if err != nil {
			return translate(err, "dish")
		}
		for _, q := range []string{
			`DELETE FROM section_items WHERE dish_id = $1`,
			`DELETE FROM prices WHERE dish_id = $1`,
			`DELETE FROM dishes WHERE id = $1`,
		} {
			if _, err := tx.ExecContext(ctx, q, id); err != nil {
				return translate(err, "dish")
			}
		}
		return nil
	})
	return imageURL, err
}

// ImageURLs returns every image URL still referenced by a dish or the
// restaurant info.
func (s *Store) ImageURLs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT image_url FROM dishes WHERE image_url <> ''
		UNION
		SELECT images_og_image FROM restaurant_info WHERE images_og_image <> ''
		UNION
		SELECT images_home_layout_image FROM restaurant_info WHERE images_home_layout_image <> ''`)
	if err != nil {
		return nil, translate(err, "image urls")
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, translate(err, "image urls")
		}
		urls = append(urls, u)
	}
	return urls, translate(rows.Err(), "image urls")
}

func sectionIDByName(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM sections WHERE name = $1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperr.Validation(fmt.Sprintf("category %q does not exist", name))
	}
	if err != nil {
		return 0, translate(err, "category")
	}
	return id, nil
}

func insertPrices(ctx context.Context, tx *sql.Tx, dishID int64, prices []models.PriceOption) error {
	for _, p := range prices {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO prices (dish_id, name, price) VALUES ($1, $2, $3)`,
			dishID, p.Name, p.Price); err != nil {
			return translate(err, "price")
		}
	}
	return nil
}

func appendToSection(ctx context.Context, tx *sql.Tx, sectionID, dishID int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO section_items (section_id, dish_id, order_index)
		SELECT $1, $2, COALESCE(MAX(order_index), 0) + 1
		FROM section_items
		WHERE section_id = $1`, sectionID, dishID)
	return translate(err, "section item")
}

func moveToSection(ctx context.Context, tx *sql.Tx, dishID int64, category string) error {
	sectionID, err := sectionIDByName(ctx, tx, category)
	if err != nil {
		return err
	}
	var linked bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM section_items WHERE dish_id = $1 AND section_id = $2)`,
		dishID, sectionID).Scan(&linked)
	if err != nil {
		return translate(err, "section item")
	}
	if linked {
		return nil
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM section_items WHERE dish_id = $1`, dishID); err != nil {
		return translate(err, "section item")
	}
	return appendToSection(ctx, tx, sectionID, dishID)
}

// flatPrice mirrors the first price option into the legacy price column.
func flatPrice(prices []models.PriceOption) *int64 {
	if len(prices) == 0 {
		return nil
	}
	p := prices[0].Price
	return &p
}
