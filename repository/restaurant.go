package repository

import (
	"context"

	"aukra/models"
)

// Restaurant returns the restaurant info row without intro blocks. It
// reports NotFound until the row has been saved once.
func (s *Store) Restaurant(ctx context.Context) (models.RestaurantInfo, error) {
	var r models.RestaurantInfo
	err := s.db.QueryRowContext(ctx, `
		SELECT name, description,
		       address_street, address_city, address_state, address_postal_code, address_country,
		       contact_phone, contact_instagram,
		       business_hours_weekday_open, business_hours_weekday_last_order, business_hours_weekday_close,
		       business_hours_weekend_open, business_hours_weekend_last_order, business_hours_weekend_close,
		       mobile_business_hours, images_og_image, images_home_layout_image
		FROM restaurant_info
		WHERE id = 1`).Scan(
		&r.Name, &r.Description,
		&r.Address.Street, &r.Address.City, &r.Address.State, &r.Address.PostalCode, &r.Address.Country,
		&r.Contact.Phone, &r.Contact.Instagram,
		&r.BusinessHours.Weekday.Open, &r.BusinessHours.Weekday.LastOrder, &r.BusinessHours.Weekday.Close,
		&r.BusinessHours.Weekend.Open, &r.BusinessHours.Weekend.LastOrder, &r.BusinessHours.Weekend.Close,
		&r.MobileBusinessHours, &r.Images.OgImage, &r.Images.HomeLayoutImage,
	)
	return r, translate(err, "restaurant")
}

// SaveRestaurant creates or overwrites the restaurant info row. Intro
// blocks are stored separately and ignored here.
func (s *Store) SaveRestaurant(ctx context.Context, r models.RestaurantInfo) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO restaurant_info (
			id, name, description,
			address_street, address_city, address_state, address_postal_code, address_country,
			contact_phone, contact_instagram,
			business_hours_weekday_open, business_hours_weekday_last_order, business_hours_weekday_close,
			business_hours_weekend_open, business_hours_weekend_last_order, business_hours_weekend_close,
			mobile_business_hours, images_og_image, images_home_layout_image)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			address_street = EXCLUDED.address_street,
			address_city = EXCLUDED.address_city,
			address_state = EXCLUDED.address_state,
			address_postal_code = EXCLUDED.address_postal_code,
			address_country = EXCLUDED.address_country,
			contact_phone = EXCLUDED.contact_phone,
			contact_instagram = EXCLUDED.contact_instagram,
			business_hours_weekday_open = EXCLUDED.business_hours_weekday_open,
			business_hours_weekday_last_order = EXCLUDED.business_hours_weekday_last_order,
			business_hours_weekday_close = EXCLUDED.business_hours_weekday_close,
			business_hours_weekend_open = EXCLUDED.business_hours_weekend_open,
			business_hours_weekend_last_order = EXCLUDED.business_hours_weekend_last_order,
			business_hours_weekend_close = EXCLUDED.business_hours_weekend_close,
			mobile_business_hours = EXCLUDED.mobile_business_hours,
			images_og_image = EXCLUDED.images_og_image,
			images_home_layout_image = EXCLUDED.images_home_layout_image`,
		r.Name, r.Description,
		r.Address.Street, r.Address.City, r.Address.State, r.Address.PostalCode, r.Address.Country,
		r.Contact.Phone, r.Contact.Instagram,
		r.BusinessHours.Weekday.Open, r.BusinessHours.Weekday.LastOrder, r.BusinessHours.Weekday.Close,
		r.BusinessHours.Weekend.Open, r.BusinessHours.Weekend.LastOrder, r.BusinessHours.Weekend.Close,
		r.MobileBusinessHours, r.Images.OgImage, r.Images.HomeLayoutImage,
	)
	return translate(err, "restaurant")
}
