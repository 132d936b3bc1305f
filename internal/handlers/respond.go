package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"listd/internal/apperr"
)

func decodeJSON(r *http.Request, dest any) error {
	if r.Body == nil {
		return errors.New("request body required")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError maps a domain error to its transport shape. Validation errors
// carry a structured field list; internal errors are logged server-side and
// reported with a generic body.
func respondError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
		respondJSON(w, status, map[string]any{"error": "server error"})
		return
	}
	if fields := apperr.FieldsOf(err); len(fields) > 0 {
		respondJSON(w, status, map[string]any{"errors": fields})
		return
	}
	respondJSON(w, status, map[string]any{"error": apperr.MessageOf(err)})
}

// invalidBody wraps a JSON decode failure as a field-level validation error.
func invalidBody(error) error {
	return apperr.Invalid(apperr.FieldError{
		Code:    "invalid_body",
		Field:   "",
		Message: "request body is not valid JSON",
	})
}
