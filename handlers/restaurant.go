package handlers

import (
	"errors"
	"net/http"
	"strings"

	"aukra/apperr"
	"aukra/models"
	"aukra/static"
)

// restaurantCacheControl lets browsers and CDNs keep restaurant info for
// five minutes.
const restaurantCacheControl = "public, max-age=300, s-maxage=300"

// GetRestaurantHandler serves restaurant info with its active intro blocks.
// Until the info has been saved once, the bundled defaults are served.
func GetRestaurantHandler(store RestaurantStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := store.Restaurant(r.Context())
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			info = static.Restaurant()
		case err != nil:
			respondError(w, r, err)
			return
		default:
			if info.Intro, err = store.Intros(r.Context(), true); err != nil {
				respondError(w, r, err)
				return
			}
		}
		w.Header().Set("Cache-Control", restaurantCacheControl)
		respond(w, http.StatusOK, "Restaurant information retrieved successfully", info)
	}
}

func UpdateRestaurantHandler(store RestaurantStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var info models.RestaurantInfo
		if err := decodeJSON(w, r, &info); err != nil {
			respondError(w, r, err)
			return
		}
		info.Name = strings.TrimSpace(info.Name)
		info.Description = strings.TrimSpace(info.Description)
		if info.Name == "" || info.Description == "" {
			respondError(w, r, apperr.Validation("name and description are required"))
			return
		}
		info.Intro = nil
		if err := store.SaveRestaurant(r.Context(), info); err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, http.StatusOK, "Restaurant information updated successfully", info)
	}
}
