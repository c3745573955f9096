package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"vue-estate/http-server/api"
	"vue-estate/internal/storage"
)

type TemplateProvider interface {
	List(ctx context.Context) ([]*storage.ExpenseTemplate, error)
	Get(ctx context.Context, id int64) (*storage.ExpenseTemplate, error)
}

type ResponseTemplates struct {
	Templates []*storage.ExpenseTemplate `json:"templates"`
}

// GetTemplates returns the full catalog ordered by name.
func GetTemplates(log *slog.Logger, catalog TemplateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.template.GetTemplates"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		templates, err := catalog.List(ctx)
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		if templates == nil {
			templates = []*storage.ExpenseTemplate{}
		}

		render.JSON(w, r, ResponseTemplates{Templates: templates})
	}
}

// GetTemplate returns one template by id.
func GetTemplate(log *slog.Logger, catalog TemplateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.template.GetTemplate"

		id, err := api.IDParam(r, "id")
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		tmpl, err := catalog.Get(ctx, id)
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		render.JSON(w, r, tmpl)
	}
}
