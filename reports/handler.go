package reports

import (
	"context"
	"net/http"

	"stockdesk/classify"
	"stockdesk/model"
	"stockdesk/web"
)

const notAvailable = "N/A"

// Source supplies the backend report rows.
type Source interface {
	Report(ctx context.Context) ([]model.ReportRow, error)
}

// Views converts backend report rows for display. Rows without a last-updated
// time show N/A.
func Views(rows []model.ReportRow) []model.ReportView {
	out := make([]model.ReportView, 0, len(rows))
	for _, row := range rows {
		updated := notAvailable
		if !row.LastUpdated.IsZero() {
			updated = classify.FormatDate(row.LastUpdated.Time)
		}
		out = append(out, model.ReportView{
			Name:        row.Name,
			Category:    row.Category,
			Stock:       row.Stock,
			LastUpdated: updated,
		})
	}
	return out
}

func ReportHandler(src Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := src.Report(r.Context())
		if err != nil {
			web.WriteBackendError(w, "generating report", err)
			return
		}
		web.WriteJSON(w, http.StatusOK, Views(rows))
	}
}
