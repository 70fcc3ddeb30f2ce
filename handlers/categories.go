package handlers

import (
	"net/http"
	"strings"

	"aukra/apperr"
	"aukra/models"
)

// DefaultIcon is used for categories created without one.
const DefaultIcon = "IconBread"

type categoryRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
	Icon         string `json:"icon"`
}

func (req categoryRequest) section(id int64) (models.Section, error) {
	sec := models.Section{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		DisplayOrder: req.DisplayOrder,
		Icon:         strings.TrimSpace(req.Icon),
	}
	if sec.Name == "" {
		return sec, apperr.Validation("category name is required")
	}
	if sec.Icon == "" {
		sec.Icon = DefaultIcon
	}
	return sec, nil
}

func ListCategoriesHandler(store SectionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sections, err := store.Sections(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, http.StatusOK, "Categories retrieved successfully", sections)
	}
}

func CreateCategoryHandler(store SectionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		sec, err := req.section(0)
		if err != nil {
			respondError(w, r, err)
			return
		}
		sec, err = store.CreateSection(r.Context(), sec)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, http.StatusCreated, "Category created successfully", sec)
	}
}

func UpdateCategoryHandler(store SectionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "category")
		if err != nil {
			respondError(w, r, err)
			return
		}
		var req categoryRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		sec, err := req.section(id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		sec, err = store.UpdateSection(r.Context(), sec)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, http.StatusOK, "Category updated successfully", sec)
	}
}

func DeleteCategoryHandler(store SectionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "category")
		if err != nil {
			respondError(w, r, err)
			return
		}
		if err := store.DeleteSection(r.Context(), id); err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, http.StatusOK, "Category deleted successfully", nil)
	}
}
