package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"vue-estate/http-server/api"
	"vue-estate/internal/storage"
)

type TemplateUpdateProvider interface {
	Update(ctx context.Context, id int64, update storage.TemplateUpdate) error
}

func UpdateTemplateAdmin(log *slog.Logger, catalog TemplateUpdateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.template.UpdateTemplateAdmin"

		id, err := api.IDParam(r, "id")
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		var req storage.TemplateUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, r, log, op, storage.NewValidationError("body", "malformed JSON"))
			return
		}

		if err := catalog.Update(r.Context(), id, req); err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		render.JSON(w, r, map[string]string{"status": "updated"})
	}
}
