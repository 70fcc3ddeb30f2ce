package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"aukra/apperr"
)

const maxBodyBytes = 1 << 20

type envelope struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Warnw("failed to encode response", "error", err)
	}
}

func respond(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Message: message, Data: data})
}

// respondError writes err as {"error": ...}. Errors without a client-facing
// message get a generic one and are logged in full.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	msg := apperr.Message(err)
	if msg == "" {
		msg = "Something went wrong"
	}
	if status >= http.StatusInternalServerError {
		zap.S().Errorw("request failed",
			"method", r.Method, "path", r.URL.Path, "status", status,
			"request_id", RequestID(r.Context()), "error", err)
	} else {
		zap.S().Debugw("request rejected",
			"method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, envelope{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Validation("request body too large")
		}
		return &apperr.Error{Kind: apperr.KindValidation, Message: "invalid JSON body", Err: err}
	}
	return nil
}

// pathID parses the {id} wildcard as a positive integer.
func pathID(r *http.Request, what string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid " + what + " id")
	}
	return id, nil
}
