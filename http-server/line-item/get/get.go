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

type LineItemProvider interface {
	ListItems(ctx context.Context, viewingID int64) ([]*storage.LineItem, error)
}

type ResponseItems struct {
	Items []*storage.LineItem `json:"line_items"`
}

// GetLineItems returns all line items of one viewing.
func GetLineItems(log *slog.Logger, costs LineItemProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lineitem.GetLineItems"

		viewingID, err := api.IDParam(r, "id")
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		items, err := costs.ListItems(ctx, viewingID)
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		if items == nil {
			items = []*storage.LineItem{}
		}

		render.JSON(w, r, ResponseItems{Items: items})
	}
}
