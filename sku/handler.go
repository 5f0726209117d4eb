package sku

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"stockdesk/catalog"
	"stockdesk/model"
	"stockdesk/web"
)

// API is the part of the backend client the SKU handlers use.
type API interface {
	Companies(ctx context.Context) ([]model.Company, error)
	GenerateSKU(ctx context.Context, in model.SKURequest) (model.SKUResult, error)
	CheckDuplicate(ctx context.Context, productName string) (model.DuplicateCheck, error)
}

func CompaniesHandler(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companies, err := api.Companies(r.Context())
		if err != nil {
			web.WriteBackendError(w, "loading companies", err)
			return
		}
		if companies == nil {
			companies = []model.Company{}
		}
		web.WriteJSON(w, http.StatusOK, companies)
	}
}

// GenerateHandler creates a product with a generated SKU. A product with the
// same name is reported instead of created again.
func GenerateHandler(api API, store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form model.SKUForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			web.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		req, err := BuildRequest(form)
		if err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		dup, err := api.CheckDuplicate(r.Context(), req.ProductName)
		if err != nil {
			web.WriteBackendError(w, "checking for duplicate product", err)
			return
		}
		if dup.Exists {
			web.WriteJSON(w, http.StatusOK, model.SKUResult{
				Message:   "Product already exists!",
				SKU:       dup.SKU,
				ProductID: dup.ProductID,
				Existing:  true,
			})
			return
		}

		res, err := api.GenerateSKU(r.Context(), req)
		if err != nil {
			web.WriteBackendError(w, "creating product", err)
			return
		}
		log.Printf("SKU %s issued for product %q.", res.SKU, req.ProductName)
		if store != nil {
			if err := store.Refresh(r.Context()); err != nil {
				log.Printf("WARN: product created but the product list could not be reloaded: %v", err)
			}
		}
		// The backend repeats its own name check and answers 200 with this message.
		status := http.StatusCreated
		if res.Message == "Product already exists" {
			res.Existing = true
			status = http.StatusOK
		}
		web.WriteJSON(w, status, res)
	}
}

func CheckDuplicateHandler(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ProductName string `json:"productName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			web.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(body.ProductName)
		if name == "" {
			web.WriteJSONError(w, "Product name is required", http.StatusBadRequest)
			return
		}
		res, err := api.CheckDuplicate(r.Context(), name)
		if err != nil {
			web.WriteBackendError(w, "checking for duplicate product", err)
			return
		}
		web.WriteJSON(w, http.StatusOK, res)
	}
}

// ShortFormHandler suggests a short form for ?name=.
func ShortFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		web.WriteJSON(w, http.StatusOK, map[string]string{"shortForm": ShortForm(r.URL.Query().Get("name"))})
	}
}
