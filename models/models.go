package models

// PriceName labels one price tier of a dish.
type PriceName string

const (
	PriceStandard PriceName = "standard"
	PriceSingle   PriceName = "single"
	PriceDouble   PriceName = "double"
	PriceSmall    PriceName = "small"
	PriceMedium   PriceName = "medium"
)

// Valid reports whether n is one of the known price tiers.
func (n PriceName) Valid() bool {
	switch n {
	case PriceStandard, PriceSingle, PriceDouble, PriceSmall, PriceMedium:
		return true
	}
	return false
}

// Section is a menu category row. Name is unique and is what the admin UI
// shows as the category key.
type Section struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
	Icon         string `json:"icon"`
}

// Dish is a row of the dishes table together with its price rows.
// Price is the legacy single-price column and may be nil.
type Dish struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Ingredients string        `json:"ingredients"`
	ImageURL    string        `json:"image_url"`
	BestSeller  bool          `json:"best_seller"`
	Price       *int64        `json:"price,omitempty"`
	Prices      []PriceOption `json:"prices,omitempty"`
	SectionID   *int64        `json:"section_id,omitempty"`
}

// PriceOption is one price tier of a dish.
type PriceOption struct {
	DishID int64     `json:"-"`
	Name   PriceName `json:"name"`
	Price  int64     `json:"price"`
}

// SectionItem links a dish to a section. Dish is set when the row was read
// with its dish joined; it stays nil for a dangling link.
type SectionItem struct {
	SectionID  int64 `json:"section_id"`
	DishID     int64 `json:"dish_id"`
	OrderIndex int   `json:"order_index"`
	Dish       *Dish `json:"dish,omitempty"`
}

// MenuItem is a dish as the public menu renders it.
type MenuItem struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Ingredients string        `json:"ingredients"`
	ImageURL    string        `json:"imageUrl"`
	BestSeller  bool          `json:"bestSeller"`
	Prices      []PriceOption `json:"prices"`
}

// MenuSection is one category of the public menu with its ordered items.
type MenuSection struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon,omitempty"`
	Items       []MenuItem `json:"items"`
}
