package client

import (
	"aukra/models"
	"aukra/static"
)

// Fallback supplies the data shown when a fetch fails.
type Fallback interface {
	Menu() ([]models.MenuSection, bool)
	Dish(id string) (*models.MenuItem, bool)
	Restaurant() (*models.RestaurantInfo, bool)
}

// StaticFallback serves the data bundled in package static.
type StaticFallback struct{}

func (StaticFallback) Menu() ([]models.MenuSection, bool) { return static.Menu(), true }

func (StaticFallback) Dish(id string) (*models.MenuItem, bool) {
	d, ok := static.Dish(id)
	if !ok {
		return nil, false
	}
	return &d, true
}

func (StaticFallback) Restaurant() (*models.RestaurantInfo, bool) {
	r := static.Restaurant()
	return &r, true
}

// NoFallback never has data; failed fetches surface with no data at all.
type NoFallback struct{}

func (NoFallback) Menu() ([]models.MenuSection, bool)         { return nil, false }
func (NoFallback) Dish(string) (*models.MenuItem, bool)       { return nil, false }
func (NoFallback) Restaurant() (*models.RestaurantInfo, bool) { return nil, false }
