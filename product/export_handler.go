package product

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"stockdesk/catalog"
	"stockdesk/database"
	"stockdesk/export"
	"stockdesk/model"
	"stockdesk/web"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"

	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler downloads the current selection (scope=filtered, the default)
// or the whole working set (scope=all) as CSV or XLSX.
func ExportHandler(store *catalog.Store, db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		scope := q.Get("scope")
		if scope == "" {
			scope = export.ScopeFiltered
		}
		if scope != export.ScopeFiltered && scope != export.ScopeAll {
			web.WriteJSONError(w, "scope must be filtered or all", http.StatusBadRequest)
			return
		}
		format := q.Get("format")
		if format == "" {
			format = formatCSV
		}
		if format != formatCSV && format != formatXLSX {
			web.WriteJSONError(w, "format must be csv or xlsx", http.StatusBadRequest)
			return
		}

		view := catalog.NewView(store).Sort(catalog.ParseSort(q.Get))
		products := view.All()
		if scope == export.ScopeFiltered {
			products = view.Filter(catalog.ParseFilter(q.Get)).Products()
		}

		var buf bytes.Buffer
		var rows int
		var err error
		contentType := contentTypeCSV
		if format == formatXLSX {
			contentType = contentTypeXLSX
			rows, err = export.WriteXLSX(&buf, products)
		} else {
			rows, err = export.WriteCSV(&buf, products)
		}
		if errors.Is(err, export.ErrNothingToExport) {
			web.WriteJSONError(w, "No products to export", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Printf("ERROR: export (%s, %s) failed: %v", scope, format, err)
			web.WriteJSONError(w, "Failed to build export file", http.StatusInternalServerError)
			return
		}

		now := time.Now()
		filename := export.Filename(now, format)
		if db != nil {
			if _, err := database.RecordExport(db, filename, scope, format, rows, now); err != nil {
				log.Printf("WARN: export succeeded but was not logged: %v", err)
			}
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Write(buf.Bytes())
	}
}

// ExportLogHandler lists recent exports, newest first.
func ExportLogHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		entries, err := database.RecentExports(db, limit)
		if err != nil {
			log.Printf("ERROR: %v", err)
			web.WriteJSONError(w, "Failed to load export log", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []model.ExportLogEntry{}
		}
		web.WriteJSON(w, http.StatusOK, entries)
	}
}
