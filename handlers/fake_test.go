package handlers

import (
	"context"
	"fmt"
	"io"
	"sort"

	"aukra/apperr"
	"aukra/models"
	"aukra/repository"
	"aukra/storage"
)

// fakeStore is an in-memory stand-in for repository.Store.
type fakeStore struct {
	sections   []models.Section
	items      []models.SectionItem
	prices     []models.PriceOption
	dishes     map[int64]models.Dish
	intros     []models.IntroBlock
	restaurant *models.RestaurantInfo
	nextID     int64

	// err, when set, is returned by every call.
	err error

	lastInput repository.DishInput
	reordered []repository.IntroOrder
}

func newFakeStore() *fakeStore {
	return &fakeStore{dishes: map[int64]models.Dish{}, nextID: 100}
}

func (f *fakeStore) Ping(context.Context) error { return f.err }

func (f *fakeStore) Sections(context.Context) ([]models.Section, error) {
	return f.sections, f.err
}

func (f *fakeStore) SectionItems(context.Context) ([]models.SectionItem, error) {
	return f.items, f.err
}

func (f *fakeStore) Prices(context.Context) ([]models.PriceOption, error) {
	return f.prices, f.err
}

func (f *fakeStore) Dish(_ context.Context, id int64) (models.Dish, error) {
	if f.err != nil {
		return models.Dish{}, f.err
	}
	d, ok := f.dishes[id]
	if !ok {
		return models.Dish{}, apperr.NotFound("dish not found")
	}
	return d, nil
}

func (f *fakeStore) CreateDish(_ context.Context, in repository.DishInput) (models.Dish, error) {
	if f.err != nil {
		return models.Dish{}, f.err
	}
	f.lastInput = in
	f.nextID++
	d := models.Dish{ID: f.nextID, Name: in.Name, ImageURL: in.ImageURL, Prices: in.Prices}
	f.dishes[d.ID] = d
	return d, nil
}

func (f *fakeStore) UpdateDish(_ context.Context, id int64, in repository.DishInput) (models.Dish, error) {
	if f.err != nil {
		return models.Dish{}, f.err
	}
	if _, ok := f.dishes[id]; !ok {
		return models.Dish{}, apperr.NotFound("dish not found")
	}
	f.lastInput = in
	d := models.Dish{ID: id, Name: in.Name, Prices: in.Prices}
	f.dishes[id] = d
	return d, nil
}

func (f *fakeStore) DeleteDish(_ context.Context, id int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	d, ok := f.dishes[id]
	if !ok {
		return "", apperr.NotFound("dish not found")
	}
	delete(f.dishes, id)
	return d.ImageURL, nil
}

func (f *fakeStore) CreateSection(_ context.Context, sec models.Section) (models.Section, error) {
	for _, s := range f.sections {
		if s.Name == sec.Name {
			return sec, apperr.Conflict(fmt.Sprintf("category %q already exists", sec.Name))
		}
	}
	f.nextID++
	sec.ID = f.nextID
	f.sections = append(f.sections, sec)
	return sec, nil
}

func (f *fakeStore) UpdateSection(_ context.Context, sec models.Section) (models.Section, error) {
	idx := -1
	for i, s := range f.sections {
		if s.ID == sec.ID {
			idx = i
		} else if s.Name == sec.Name {
			return sec, apperr.Conflict(fmt.Sprintf("category %q already exists", sec.Name))
		}
	}
	if idx < 0 {
		return sec, apperr.NotFound("category not found")
	}
	f.sections[idx] = sec
	return sec, nil
}

func (f *fakeStore) DeleteSection(_ context.Context, id int64) error {
	for _, it := range f.items {
		if it.SectionID == id {
			return apperr.Dependency("category still has dishes")
		}
	}
	for i, s := range f.sections {
		if s.ID == id {
			f.sections = append(f.sections[:i], f.sections[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("category not found")
}

func (f *fakeStore) Intros(_ context.Context, activeOnly bool) ([]models.IntroBlock, error) {
	out := []models.IntroBlock{}
	for _, b := range f.intros {
		if !activeOnly || b.IsActive {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, f.err
}

func (f *fakeStore) CreateIntro(_ context.Context, b models.IntroBlock) (models.IntroBlock, error) {
	f.nextID++
	b.ID = f.nextID
	f.intros = append(f.intros, b)
	return b, nil
}

func (f *fakeStore) UpdateIntro(_ context.Context, b models.IntroBlock) (models.IntroBlock, error) {
	for i := range f.intros {
		if f.intros[i].ID == b.ID {
			f.intros[i] = b
			return b, nil
		}
	}
	return b, apperr.NotFound("intro not found")
}

func (f *fakeStore) DeleteIntro(_ context.Context, id int64) error {
	for i := range f.intros {
		if f.intros[i].ID == id {
			f.intros = append(f.intros[:i], f.intros[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("intro not found")
}

func (f *fakeStore) ReorderIntros(_ context.Context, order []repository.IntroOrder) error {
	f.reordered = order
	return nil
}

func (f *fakeStore) Restaurant(context.Context) (models.RestaurantInfo, error) {
	if f.err != nil {
		return models.RestaurantInfo{}, f.err
	}
	if f.restaurant == nil {
		return models.RestaurantInfo{}, apperr.NotFound("restaurant not found")
	}
	return *f.restaurant, nil
}

func (f *fakeStore) SaveRestaurant(_ context.Context, r models.RestaurantInfo) error {
	f.restaurant = &r
	return f.err
}

// fakeImages records uploads and removals.
type fakeImages struct {
	uploaded  map[string]string
	removed   []string
	removeErr error
}

func (f *fakeImages) Upload(_ context.Context, bucket, path, contentType string, body io.Reader) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	if f.uploaded == nil {
		f.uploaded = map[string]string{}
	}
	f.uploaded[path] = string(b)
	return "https://cdn/" + bucket + "/" + path, nil
}

func (f *fakeImages) Remove(_ context.Context, _ string, paths []string) error {
	f.removed = append(f.removed, paths...)
	return f.removeErr
}

func (f *fakeImages) ListBuckets(context.Context) ([]storage.Bucket, error) {
	return []storage.Bucket{{ID: "menu-images", Name: "menu-images", Public: true}}, nil
}

func (f *fakeImages) ObjectPath(bucket, u string) (string, bool) {
	prefix := "https://cdn/" + bucket + "/"
	if len(u) <= len(prefix) || u[:len(prefix)] != prefix {
		return "", false
	}
	return u[len(prefix):], true
}
