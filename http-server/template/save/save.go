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

type TemplateCreateProvider interface {
	Create(ctx context.Context, tmpl storage.ExpenseTemplate) (int64, error)
}

func SaveTemplateAdmin(log *slog.Logger, catalog TemplateCreateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.template.SaveTemplateAdmin"

		var req struct {
			Name        string               `json:"name"`
			Description string               `json:"description"`
			Estimation  *float64             `json:"estimation"`
			Kind        storage.TemplateKind `json:"kind"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, r, log, op, storage.NewValidationError("body", "malformed JSON"))
			return
		}

		id, err := catalog.Create(r.Context(), storage.ExpenseTemplate{
			Name:        req.Name,
			Description: req.Description,
			Estimation:  req.Estimation,
			Kind:        req.Kind,
		})
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]int64{"id": id})
	}
}
