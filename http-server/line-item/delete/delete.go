package delete

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"vue-estate/http-server/api"
)

type LineItemDeleteProvider interface {
	DeleteItem(ctx context.Context, id int64) error
}

func DeleteLineItem(log *slog.Logger, costs LineItemDeleteProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lineitem.DeleteLineItem"

		id, err := api.IDParam(r, "id")
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		if err := costs.DeleteItem(r.Context(), id); err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		render.JSON(w, r, map[string]string{"status": "deleted"})
	}
}
