package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"aukra/apperr"
	"aukra/models"
	"aukra/repository"
)

type introRequest struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	DisplayOrder int    `json:"display_order"`
	IntroType    string `json:"intro_type"`
	TitleAlign   string `json:"title_align"`
	ContentAlign string `json:"content_align"`
	IsActive     *bool  `json:"is_active"`
}

func (req introRequest) block(id int64) (models.IntroBlock, error) {
	b := models.IntroBlock{
		ID:           id,
		Title:        strings.TrimSpace(req.Title),
		Content:      strings.TrimSpace(req.Content),
		DisplayOrder: req.DisplayOrder,
		IntroType:    orDefault(req.IntroType, models.IntroText),
		TitleAlign:   orDefault(req.TitleAlign, models.AlignLeft),
		ContentAlign: orDefault(req.ContentAlign, models.AlignLeft),
		IsActive:     req.IsActive == nil || *req.IsActive,
	}
	if b.Title == "" && b.Content == "" {
		return b, apperr.Validation("title or content is required")
	}
	switch b.IntroType {
	case models.IntroText, models.IntroHighlight, models.IntroMenu, models.IntroSlogan:
	default:
		return b, apperr.Validation(fmt.Sprintf("unknown intro type %q", b.IntroType))
	}
	for _, a := range []string{b.TitleAlign, b.ContentAlign} {
		switch a {
		case models.AlignLeft, models.AlignCenter, models.AlignRight:
		default:
			return b, apperr.Validation(fmt.Sprintf("unknown alignment %q", a))
		}
	}
	return b, nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

// ListIntrosHandler serves every intro block, active or not, for the admin UI.
func ListIntrosHandler(store IntroStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		intros, err := store.Intros(r.Context(), false)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, http.StatusOK, "Intros retrieved successfully", intros)
	}
}

func CreateIntroHandler(store IntroStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req introRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		b, err := req.block(0)
		if err != nil {
			respondError(w, r, err)
			return
		}
		b, err = store.CreateIntro(r.Context(), b)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, http.StatusCreated, "Intro created successfully", b)
	}
}

func UpdateIntroHandler(store IntroStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "intro")
		if err != nil {
			respondError(w, r, err)
			return
		}
		var req introRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		b, err := req.block(id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		b, err = store.UpdateIntro(r.Context(), b)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, http.StatusOK, "Intro updated successfully", b)
	}
}

func DeleteIntroHandler(store IntroStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "intro")
		if err != nil {
			respondError(w, r, err)
			return
		}
		if err := store.DeleteIntro(r.Context(), id); err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, http.StatusOK, "Intro deleted successfully", nil)
	}
}

// ReorderIntrosHandler applies {"intros": [{"id", "display_order"}]} as one
// transaction.
func ReorderIntrosHandler(store IntroStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Intros []repository.IntroOrder `json:"intros"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			respondError(w, r, err)
			return
		}
		if len(req.Intros) == 0 {
			respondError(w, r, apperr.Validation("intros must not be empty"))
			return
		}
		for _, o := range req.Intros {
			if o.ID <= 0 {
				respondError(w, r, apperr.Validation("invalid intro id"))
				return
			}
		}
		if err := store.ReorderIntros(r.Context(), req.Intros); err != nil {
			respondError(w, r, err)
			return
		}
		respond(w, http.StatusOK, "Intros reordered successfully", nil)
	}
}
