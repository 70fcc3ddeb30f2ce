package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"aukra/apperr"
	"aukra/menu"
	"aukra/models"
	"aukra/repository"
)

// dishRequest is the admin payload for creating or updating a dish. Either
// Prices or the single Price may be given.
type dishRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Ingredients string               `json:"ingredients"`
	ImageURL    string               `json:"imageUrl"`
	BestSeller  bool                 `json:"bestSeller"`
	Price       *int64               `json:"price"`
	Prices      []models.PriceOption `json:"prices"`
	Category    string               `json:"category"`
}

func (req dishRequest) input(requireCategory bool) (repository.DishInput, error) {
	in := repository.DishInput{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Ingredients: strings.TrimSpace(req.Ingredients),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		BestSeller:  req.BestSeller,
		Category:    strings.TrimSpace(req.Category),
	}
	if in.Name == "" {
		return in, apperr.Validation("name is required")
	}
	if requireCategory && in.Category == "" {
		return in, apperr.Validation("category is required")
	}

	prices := req.Prices
	if len(prices) == 0 && req.Price != nil {
		prices = []models.PriceOption{{Name: models.PriceStandard, Price: *req.Price}}
	}
	if len(prices) == 0 {
		return in, apperr.Validation("at least one price is required")
	}
	seen := make(map[models.PriceName]bool, len(prices))
	for _, p := range prices {
		if !p.Name.Valid() {
			return in, apperr.Validation(fmt.Sprintf("unknown price option %q", p.Name))
		}
		if seen[p.Name] {
			return in, apperr.Validation(fmt.Sprintf("duplicate price option %q", p.Name))
		}
		if p.Price < 0 {
			return in, apperr.Validation("price must not be negative")
		}
		seen[p.Name] = true
	}
	in.Prices = prices
	return in, nil
}

// ListDishesHandler serves the whole menu grouped by section.
func ListDishesHandler(store MenuStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sections, err := store.Sections(ctx)
		if err != nil {
			respondError(w, r, err)
			return
		}
		items, err := store.SectionItems(ctx)
		if err != nil {
			respondError(w, r, err)
			return
		}
		prices, err := store.Prices(ctx)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, http.StatusOK, "Dishes retrieved successfully", menu.Build(sections, items, prices))
	}
}

func GetDishHandler(store DishStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "dish")
		if err != nil {
			respondError(w, r, err)
			return
		}
		d, err := store.Dish(r.Context(), id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, http.StatusOK, "Dish information retrieved successfully", menu.ItemFromDish(d, nil))
	}
}

func CreateDishHandler(store DishStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dishRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		in, err := req.input(true)
		if err != nil {
			respondError(w, r, err)
			return
		}
		d, err := store.CreateDish(r.Context(), in)
		if err != nil {
			respondError(w, r, err)
			return
		}
		zap.S().Infow("dish created", "id", d.ID, "name", d.Name, "category", in.Category)
		respond(w, http.StatusCreated, "Dish created successfully", d)
	}
}

func UpdateDishHandler(store DishStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "dish")
		if err != nil {
			respondError(w, r, err)
			return
		}
		var req dishRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		in, err := req.input(false)
		if err != nil {
			respondError(w, r, err)
			return
		}
		d, err := store.UpdateDish(r.Context(), id, in)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, http.StatusOK, "Dish updated successfully", d)
	}
}

// DeleteDishHandler deletes the dish, then its stored image if the image
// lives in our bucket. A failed image removal is only logged. images may be
// nil when storage is not configured.
func DeleteDishHandler(store DishStore, images ImageStorage, bucket string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "dish")
		if err != nil {
			respondError(w, r, err)
			return
		}
		imageURL, err := store.DeleteDish(r.Context(), id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		if images != nil && imageURL != "" {
			removeImage(r.Context(), images, bucket, imageURL)
		}
		respond(w, http.StatusOK, "Dish deleted successfully", nil)
	}
}

func removeImage(ctx context.Context, images ImageStorage, bucket, imageURL string) {
	p, ok := images.ObjectPath(bucket, imageURL)
	if !ok {
		return
	}
	if err := images.Remove(ctx, bucket, []string{p}); err != nil {
		zap.S().Warnw("failed to remove dish image", "path", p, "error", err)
	}
}
