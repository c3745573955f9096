package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"vue-estate/http-server/api"
)

type ExcelGenerator interface {
	GenerateExcel(ctx context.Context, viewingID int64) ([]byte, error)
}

// GenerateReportExcel streams the cost-report workbook for one viewing.
func GenerateReportExcel(log *slog.Logger, generator ExcelGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.GenerateReportExcel"

		viewingID, err := api.IDParam(r, "id")
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		data, err := generator.GenerateExcel(ctx, viewingID)
		if err != nil {
			api.WriteError(w, r, log, op, err)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="cost-report-%d.xlsx"`, viewingID))
		if _, err := w.Write(data); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to write report")
		}
	}
}
