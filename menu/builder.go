// Package menu turns the relational menu rows into the nested shape the
// public site renders.
package menu

import (
	"sort"
	"strconv"

	"aukra/models"
)

// Build groups section items under their sections, resolves each item's dish
// and prices, and orders items by order_index. Sections keep their input
// order and appear even when empty. Items whose dish is missing are dropped.
func Build(sections []models.Section, items []models.SectionItem, prices []models.PriceOption) []models.MenuSection {
	bySection := make(map[int64][]models.SectionItem, len(sections))
	for _, it := range items {
		bySection[it.SectionID] = append(bySection[it.SectionID], it)
	}

	byDish := make(map[int64][]models.PriceOption)
	for _, p := range prices {
		byDish[p.DishID] = append(byDish[p.DishID], p)
	}

	out := make([]models.MenuSection, 0, len(sections))
	for _, s := range sections {
		linked := bySection[s.ID]
		sort.SliceStable(linked, func(i, j int) bool {
			return linked[i].OrderIndex < linked[j].OrderIndex
		})

		menuItems := make([]models.MenuItem, 0, len(linked))
		for _, it := range linked {
			if it.Dish == nil {
				continue
			}
			menuItems = append(menuItems, ItemFromDish(*it.Dish, byDish[it.Dish.ID]))
		}

		out = append(out, models.MenuSection{
			Name:        s.Name,
			Description: s.Description,
			Icon:        s.Icon,
			Items:       menuItems,
		})
	}
	return out
}

// ItemFromDish converts a dish row to a menu item. Explicit price rows win;
// a dish carrying only the legacy flat price gets a single standard option.
func ItemFromDish(d models.Dish, prices []models.PriceOption) models.MenuItem {
	if len(prices) == 0 {
		prices = d.Prices
	}
	return models.MenuItem{
		ID:          strconv.FormatInt(d.ID, 10),
		Name:        d.Name,
		Description: d.Description,
		Ingredients: d.Ingredients,
		ImageURL:    d.ImageURL,
		BestSeller:  d.BestSeller,
		Prices:      PriceOptions(d.Price, prices),
	}
}

// PriceOptions returns the canonical price list for a dish.
func PriceOptions(flat *int64, prices []models.PriceOption) []models.PriceOption {
	if len(prices) > 0 {
		out := make([]models.PriceOption, len(prices))
		copy(out, prices)
		return out
	}
	if flat != nil {
		return []models.PriceOption{{Name: models.PriceStandard, Price: *flat}}
	}
	return []models.PriceOption{}
}
