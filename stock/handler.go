package stock

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"stockdesk/backend"
	"stockdesk/catalog"
	"stockdesk/classify"
	"stockdesk/export"
	"stockdesk/model"
	"stockdesk/parsers"
	"stockdesk/units"
	"stockdesk/web"
)

const maxUploadSize = 32 << 20

// API is the part of the backend client the stock handlers use.
type API interface {
	StockIn(ctx context.Context, m model.StockMovement) error
	StockInDetailed(ctx context.Context, in model.DetailedStockIn) error
	ConfirmDuplicate(ctx context.Context, rollData model.DetailedStockIn) (model.ConfirmDuplicateResult, error)
	StockOut(ctx context.Context, m model.StockMovement) error
	StockSummary(ctx context.Context) (model.StockSummary, error)
	UploadStockFile(ctx context.Context, filename string, content []byte) (model.UploadResult, error)
}

// duplicateRollResponse relays the backend's duplicate-roll answer together
// with the question the user has to answer.
type duplicateRollResponse struct {
	Error           string             `json:"error"`
	Message         string             `json:"message"`
	ExistingProduct model.ExistingRoll `json:"existingProduct"`
	Prompt          string             `json:"prompt"`
}

func duplicatePrompt(message string, existing model.ExistingRoll) string {
	return fmt.Sprintf("%s\n\nExisting Roll:\nRoll Number: %s\nLength: %v\nWidth: %v\nImport Date: %v\n\n"+
		"Is this a duplicate?\n\n"+
		"Answer yes if this IS a duplicate (entry will be discarded)\n"+
		"Answer no if this is NOT a duplicate (an import date is needed)",
		message, existing.RollNumber, orNA(existing.Length), orNA(existing.Width), orNA(existing.ImportDate))
}

func orNA(v any) any {
	if v == nil {
		return "N/A"
	}
	return v
}

// reload refreshes the working set after a successful stock change.
func reload(ctx context.Context, store *catalog.Store) {
	if store == nil {
		return
	}
	if err := store.Refresh(ctx); err != nil {
		log.Printf("WARN: stock updated but the product list could not be reloaded: %v", err)
	}
}

func movementHandler(store *catalog.Store, action, done string, send func(context.Context, model.StockMovement) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m model.StockMovement
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			web.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := ValidateMovement(&m); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := send(r.Context(), m); err != nil {
			web.WriteBackendError(w, action, err)
			return
		}
		reload(r.Context(), store)
		web.WriteJSON(w, http.StatusOK, map[string]string{"message": done})
	}
}

// StockInHandler adds stock to an existing product.
func StockInHandler(api API, store *catalog.Store) http.HandlerFunc {
	return movementHandler(store, "adding stock", "Stock added successfully", api.StockIn)
}

// StockOutHandler issues stock from a product.
func StockOutHandler(api API, store *catalog.Store) http.HandlerFunc {
	return movementHandler(store, "issuing stock", "Stock issued successfully", api.StockOut)
}

// DetailedStockInHandler validates the detailed stock-in form and forwards it.
// A roll the backend already has is answered with 409 and the duplicate prompt.
func DetailedStockInHandler(api API, store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.DetailedStockIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			web.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := NormalizeDetailed(&in); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		err := api.StockInDetailed(r.Context(), in)
		var dup *backend.DuplicateRollError
		if errors.As(err, &dup) {
			log.Printf("Duplicate roll reported for %q: %s", in.ProductName, dup.Message)
			web.WriteJSON(w, http.StatusConflict, duplicateRollResponse{
				Error:           "DUPLICATE_ROLL",
				Message:         dup.Message,
				ExistingProduct: dup.Existing,
				Prompt:          duplicatePrompt(dup.Message, dup.Existing),
			})
			return
		}
		if err != nil {
			web.WriteBackendError(w, "adding stock", err)
			return
		}
		reload(r.Context(), store)
		web.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": "Stock added successfully",
			"sqMtr":   in.SqMtr,
		})
	}
}

// ConfirmDuplicateHandler takes the user's answer to the duplicate-roll prompt.
// A confirmed duplicate is discarded; otherwise the roll is checked like a
// fresh stock-in and re-sent with the import date that tells it apart.
func ConfirmDuplicateHandler(api API, store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.ConfirmDuplicateInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			web.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if in.IsDuplicate {
			log.Printf("Duplicate roll %q discarded by user.", in.RollData.RollNumber)
			web.WriteJSON(w, http.StatusOK, map[string]any{"message": "Duplicate entry discarded", "discarded": true})
			return
		}

		date := strings.TrimSpace(in.ImportDate)
		if date == "" {
			web.WriteJSONError(w, "Import date is required for separate entry", http.StatusBadRequest)
			return
		}
		if !ValidDate(date) {
			web.WriteJSONError(w, "Invalid date format. Please use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		if err := NormalizeDetailed(&in.RollData); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		in.RollData.ImportDate = &date

		res, err := api.ConfirmDuplicate(r.Context(), in.RollData)
		if err != nil {
			web.WriteBackendError(w, "adding stock", err)
			return
		}
		reload(r.Context(), store)
		web.WriteJSON(w, http.StatusOK, map[string]string{
			"message":    "Stock added successfully as: " + res.UniqueName,
			"uniqueName": res.UniqueName,
		})
	}
}

// SummaryHandler passes the backend stock summary through.
func SummaryHandler(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := api.StockSummary(r.Context())
		if err != nil {
			web.WriteBackendError(w, "loading stock summary", err)
			return
		}
		web.WriteJSON(w, http.StatusOK, s)
	}
}

// SqMtrHandler is the square-metre calculator of the stock-in form.
func SqMtrHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		length, _ := strconv.ParseFloat(q.Get("length"), 64)
		width, _ := strconv.ParseFloat(q.Get("width"), 64)
		lengthUnit := unitOrDefault(q.Get("lengthUnit"))
		widthUnit := unitOrDefault(q.Get("widthUnit"))

		area := SqMtr(length, lengthUnit, width, widthUnit)
		web.WriteJSON(w, http.StatusOK, map[string]any{
			"sqMtr":     area,
			"formatted": classify.Fixed(area, classify.LengthPlaces),
		})
	}
}

func unitOrDefault(u string) string {
	if u == "" {
		return units.Millimetre
	}
	return u
}

// TemplateHandler downloads the stock import template.
func TemplateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := export.WriteTemplate(&buf); err != nil {
			log.Printf("ERROR: failed to build stock template: %v", err)
			web.WriteJSONError(w, "Failed to build template", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''stock_import_template.csv")
		w.Write(buf.Bytes())
	}
}

// UploadHandler checks a stock import file locally before forwarding it.
func UploadHandler(api API, store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		file, header, err := r.FormFile("excel-file")
		if err != nil {
			web.WriteJSONError(w, "Please select a file first", http.StatusBadRequest)
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			web.WriteJSONError(w, "Failed to read uploaded file", http.StatusBadRequest)
			return
		}

		report, err := parsers.ParseStockUpload(header.Filename, content)
		if err != nil {
			web.WriteJSONError(w, "Upload failed: "+err.Error(), http.StatusBadRequest)
			return
		}
		for _, s := range report.Skipped {
			log.Printf("WARN: %s: %s", header.Filename, s)
		}
		if len(report.Rows) == 0 {
			web.WriteJSON(w, http.StatusBadRequest, map[string]any{
				"message": "Upload failed: no valid rows found",
				"skipped": report.Skipped,
			})
			return
		}

		res, err := api.UploadStockFile(r.Context(), header.Filename, content)
		if err != nil {
			web.WriteBackendError(w, "uploading stock file", err)
			return
		}
		count := res.Count
		if count == 0 {
			count = len(report.Rows)
		}
		reload(r.Context(), store)

		skipped := report.Skipped
		if skipped == nil {
			skipped = []string{}
		}
		web.WriteJSON(w, http.StatusOK, map[string]any{
			"count":     count,
			"validRows": len(report.Rows),
			"skipped":   skipped,
			"message":   fmt.Sprintf("Successfully uploaded %d records", count),
		})
	}
}
