package menu

import (
	"reflect"
	"testing"

	"aukra/models"
)

func dish(id int64, name string) *models.Dish {
	return &models.Dish{ID: id, Name: name}
}

func itemNames(s models.MenuSection) []string {
	names := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		names = append(names, it.Name)
	}
	return names
}

func TestBuild_CoffeeExample(t *testing.T) {
	sections := []models.Section{{ID: 1, Name: "Coffee", DisplayOrder: 0}}
	items := []models.SectionItem{
		{SectionID: 1, DishID: 10, OrderIndex: 1, Dish: dish(10, "Latte")},
		{SectionID: 1, DishID: 11, OrderIndex: 0, Dish: dish(11, "Americano")},
	}

	got := Build(sections, items, nil)
	if len(got) != 1 {
		t.Fatalf("len(sections) = %d, want 1", len(got))
	}
	want := []string{"Americano", "Latte"}
	if names := itemNames(got[0]); !reflect.DeepEqual(names, want) {
		t.Errorf("Coffee items = %v, want %v", names, want)
	}
}

func TestBuild_SectionOrderIndependentOfItems(t *testing.T) {
	sections := []models.Section{
		{ID: 3, Name: "Wine", DisplayOrder: 0},
		{ID: 1, Name: "Dishes", DisplayOrder: 1},
		{ID: 2, Name: "Beer", DisplayOrder: 2},
	}
	items := []models.SectionItem{
		{SectionID: 2, DishID: 5, Dish: dish(5, "Lager")},
		{SectionID: 1, DishID: 6, Dish: dish(6, "Egg in Hell")},
		{SectionID: 3, DishID: 7, Dish: dish(7, "Rioja")},
	}

	got := Build(sections, items, nil)
	var names []string
	for _, s := range got {
		names = append(names, s.Name)
	}
	want := []string{"Wine", "Dishes", "Beer"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("section order = %v, want %v", names, want)
	}
}

func TestBuild_StableOnEqualOrderIndex(t *testing.T) {
	sections := []models.Section{{ID: 1, Name: "Dishes"}}
	items := []models.SectionItem{
		{SectionID: 1, DishID: 1, OrderIndex: 2, Dish: dish(1, "C")},
		{SectionID: 1, DishID: 2, OrderIndex: 1, Dish: dish(2, "A")},
		{SectionID: 1, DishID: 3, OrderIndex: 1, Dish: dish(3, "B")},
		{SectionID: 1, DishID: 4, OrderIndex: 0, Dish: dish(4, "Z")},
		{SectionID: 1, DishID: 5, OrderIndex: 1, Dish: dish(5, "0")},
	}

	got := Build(sections, items, nil)
	want := []string{"Z", "A", "B", "0", "C"}
	if names := itemNames(got[0]); !reflect.DeepEqual(names, want) {
		t.Errorf("items = %v, want %v", names, want)
	}
}

func TestBuild_DropsDanglingLinks(t *testing.T) {
	sections := []models.Section{{ID: 1, Name: "Dishes"}}
	items := []models.SectionItem{
		{SectionID: 1, DishID: 1, OrderIndex: 0, Dish: dish(1, "Toast")},
		{SectionID: 1, DishID: 99, OrderIndex: 1},
		{SectionID: 42, DishID: 2, OrderIndex: 0, Dish: dish(2, "Orphan section")},
	}

	got := Build(sections, items, nil)
	want := []string{"Toast"}
	if names := itemNames(got[0]); !reflect.DeepEqual(names, want) {
		t.Errorf("items = %v, want %v", names, want)
	}
}

func TestBuild_EmptySectionStillListed(t *testing.T) {
	sections := []models.Section{{ID: 1, Name: "Dessert", Icon: "IconCake"}}

	got := Build(sections, nil, nil)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Items == nil || len(got[0].Items) != 0 {
		t.Errorf("Items = %#v, want empty non-nil slice", got[0].Items)
	}
	if got[0].Icon != "IconCake" {
		t.Errorf("Icon = %q", got[0].Icon)
	}
}

func TestBuild_AttachesPrices(t *testing.T) {
	flat := int64(4500)
	sections := []models.Section{{ID: 1, Name: "Coffee"}}
	items := []models.SectionItem{
		{SectionID: 1, DishID: 10, OrderIndex: 0, Dish: dish(10, "Americano")},
		{SectionID: 1, DishID: 11, OrderIndex: 1, Dish: &models.Dish{ID: 11, Name: "Drip", Price: &flat}},
		{SectionID: 1, DishID: 12, OrderIndex: 2, Dish: dish(12, "Tasting flight")},
	}
	prices := []models.PriceOption{
		{DishID: 10, Name: models.PriceSingle, Price: 5000},
		{DishID: 10, Name: models.PriceDouble, Price: 5500},
		{DishID: 99, Name: models.PriceStandard, Price: 1},
	}

	got := Build(sections, items, prices)[0].Items

	if len(got[0].Prices) != 2 || got[0].Prices[1].Name != models.PriceDouble || got[0].Prices[1].Price != 5500 {
		t.Errorf("Americano prices = %+v", got[0].Prices)
	}
	wantFlat := []models.PriceOption{{Name: models.PriceStandard, Price: 4500}}
	if !reflect.DeepEqual(got[1].Prices, wantFlat) {
		t.Errorf("Drip prices = %+v, want %+v", got[1].Prices, wantFlat)
	}
	if got[2].Prices == nil || len(got[2].Prices) != 0 {
		t.Errorf("Tasting flight prices = %#v, want empty", got[2].Prices)
	}
	if got[0].ID != "10" {
		t.Errorf("ID = %q, want %q", got[0].ID, "10")
	}
}

func TestBuild_DoesNotReorderInput(t *testing.T) {
	sections := []models.Section{{ID: 1, Name: "Coffee"}}
	items := []models.SectionItem{
		{SectionID: 1, DishID: 10, OrderIndex: 1, Dish: dish(10, "Latte")},
		{SectionID: 1, DishID: 11, OrderIndex: 0, Dish: dish(11, "Americano")},
	}
	Build(sections, items, nil)
	if items[0].DishID != 10 {
		t.Error("Build reordered its input slice")
	}
}
