package totalcost

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"vue-estate/http-server/api"
	"vue-estate/internal/service/costing"
	"vue-estate/internal/storage"
)

type TotalCostProvider interface {
	TotalCost(ctx context.Context, viewingID int64) (*costing.Breakdown, error)
}

type ResponseBreakdown struct {
	Fees           []costing.FeeLine   `json:"fees"`
	FirstSubtotal  float64             `json:"first_subtotal"`
	SecondSubtotal float64             `json:"second_subtotal"`
	Price          float64             `json:"price"`
	Total          float64             `json:"total"`
	Items          []*storage.LineItem `json:"line_items"`
}

// GetTotalCost returns the full cost breakdown of a viewing. Figures are
// rounded to whole currency units here, at the display boundary; the service
// keeps full precision.
func GetTotalCost(log *slog.Logger, costs TotalCostProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.totalcost.GetTotalCost"

		viewingID, err := api.IDParam(r, "id")
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		breakdown, err := costs.TotalCost(ctx, viewingID)
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		fees := make([]costing.FeeLine, len(breakdown.Fees))
		for i, f := range breakdown.Fees {
			fees[i] = costing.FeeLine{Label: f.Label, Amount: math.Round(f.Amount)}
		}

		items := breakdown.Items
		if items == nil {
			items = []*storage.LineItem{}
		}

		render.JSON(w, r, ResponseBreakdown{
			Fees:           fees,
			FirstSubtotal:  math.Round(breakdown.FirstSubtotal),
			SecondSubtotal: math.Round(breakdown.SecondSubtotal),
			Price:          breakdown.Price,
			Total:          math.Round(breakdown.Total),
			Items:          items,
		})
	}
}
