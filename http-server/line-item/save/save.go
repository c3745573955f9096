package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"vue-estate/http-server/api"
	"vue-estate/internal/storage"
)

type LineItemCreateProvider interface {
	CreateItem(ctx context.Context, item storage.NewLineItem) (int64, error)
}

// SaveLineItem inserts one line item. The description arrives with the units
// suffix already applied by the form layer.
func SaveLineItem(log *slog.Logger, costs LineItemCreateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lineitem.SaveLineItem"

		var req storage.NewLineItem
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, r, log, op, storage.NewValidationError("body", "malformed JSON"))
			return
		}

		id, err := costs.CreateItem(r.Context(), req)
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]int64{"id": id})
	}
}
