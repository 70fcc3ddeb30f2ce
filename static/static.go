// Package static holds the bundled menu and restaurant data served when the
// live backend cannot be reached.
package static

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"aukra/models"
)

//go:embed data/*.json
var dataFS embed.FS

type bundle struct {
	menu       []models.MenuSection
	dishes     []models.MenuItem
	restaurant models.RestaurantInfo
}

var (
	loadOnce sync.Once
	loaded   bundle
	loadErr  error
)

func load() (bundle, error) {
	loadOnce.Do(func() {
		var b bundle
		if err := decode("data/menu.json", &b.menu); err != nil {
			loadErr = err
			return
		}
		if err := decode("data/dishes.json", &b.dishes); err != nil {
			loadErr = err
			return
		}
		if err := decode("data/restaurant.json", &b.restaurant); err != nil {
			loadErr = err
			return
		}
		loaded = b
	})
	return loaded, loadErr
}

func decode(name string, v any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Menu returns a copy of the bundled menu. The embedded files are part of
// the binary, so a decode failure is a build defect and panics.
func Menu() []models.MenuSection {
	b := mustLoad()
	out := make([]models.MenuSection, len(b.menu))
	for i, s := range b.menu {
		s.Items = append([]models.MenuItem(nil), s.Items...)
		out[i] = s
	}
	return out
}

// Dish looks a dish up by id across the bundled menu and the extra dishes.
func Dish(id string) (models.MenuItem, bool) {
	b := mustLoad()
	for _, s := range b.menu {
		for _, it := range s.Items {
			if it.ID == id {
				return it, true
			}
		}
	}
	for _, it := range b.dishes {
		if it.ID == id {
			return it, true
		}
	}
	return models.MenuItem{}, false
}

// Restaurant returns the bundled restaurant info.
func Restaurant() models.RestaurantInfo {
	r := mustLoad().restaurant
	r.Intro = append([]models.IntroBlock(nil), r.Intro...)
	return r
}

func mustLoad() bundle {
	b, err := load()
	if err != nil {
		panic(err)
	}
	return b
}
