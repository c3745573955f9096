package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"vue-estate/internal/storage"
)

// ErrorResponse is the JSON body for failed requests. Field is set only for
// validation failures.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// WriteError maps the storage error taxonomy onto HTTP statuses. Validation
// errors go back with the field message; anything unexpected is logged in
// full and reported generically.
func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, err error) {
	var ve *storage.ValidationError
	switch {
	case errors.As(err, &ve):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: ve.Message, Field: ve.Field})
	case errors.Is(err, storage.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Error: "not found"})
	case errors.Is(err, storage.ErrConflict):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, ErrorResponse{Error: "operation not permitted in current state"})
	default:
		log.With(slog.String("op", op), slog.String("error", err.Error())).Error("request failed")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "internal server error"})
	}
}

// IDParam parses a chi URL parameter as an int64 id.
func IDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, storage.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}
