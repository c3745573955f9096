package reconcile

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"vue-estate/http-server/api"
	"vue-estate/internal/service/costing"
	"vue-estate/internal/storage"
)

type ReconcileProvider interface {
	Reconcile(ctx context.Context, viewingID int64, assignments []storage.Assignment) (*costing.ReconcileOutcome, error)
	Suggestions(ctx context.Context, viewingID int64) ([]costing.Suggestion, error)
}

// ReconcileLineItems applies a batch of desired template assignments against
// a viewing's line items: update where a template already has an item,
// create where it has none. Applied sub-operations stay applied even when
// others fail; the response names the failed ones so the caller can retry
// the batch.
func ReconcileLineItems(log *slog.Logger, costs ReconcileProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.reconcile.ReconcileLineItems"

		viewingID, err := api.IDParam(r, "id")
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		var req struct {
			Assignments []storage.Assignment `json:"assignments"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, r, log, op, storage.NewValidationError("body", "malformed JSON"))
			return
		}

		outcome, err := costs.Reconcile(r.Context(), viewingID, req.Assignments)
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		if len(outcome.Failed) > 0 {
			log.With(
				slog.String("op", op),
				slog.Int64("viewing_id", viewingID),
				slog.Int("failed", len(outcome.Failed)),
			).Warn("reconcile applied partially")
		}

		render.JSON(w, r, outcome)
	}
}

// GetSuggestions returns the pre-filled assignment values the form offers
// before a bulk reconcile.
func GetSuggestions(log *slog.Logger, costs ReconcileProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.reconcile.GetSuggestions"

		viewingID, err := api.IDParam(r, "id")
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		suggestions, err := costs.Suggestions(ctx, viewingID)
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		render.JSON(w, r, map[string][]costing.Suggestion{"suggestions": suggestions})
	}
}
