package delete

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"vue-estate/http-server/api"
)

type TemplateDeleteProvider interface {
	Delete(ctx context.Context, id int64) error
}

func DeleteTemplateAdmin(log *slog.Logger, catalog TemplateDeleteProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.template.DeleteTemplateAdmin"

		id, err := api.IDParam(r, "id")
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		if err := catalog.Delete(r.Context(), id); err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		render.JSON(w, r, map[string]string{"status": "deleted"})
	}
}
