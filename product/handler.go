package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"stockdesk/catalog"
	"stockdesk/classify"
	"stockdesk/model"
	"stockdesk/render"
	"stockdesk/web"
)

// Adder creates products on the backend.
type Adder interface {
	AddProduct(ctx context.Context, in model.NewProductInput) error
}

type productList struct {
	Products    []model.DisplayRecord `json:"products"`
	Count       int                   `json:"count"`
	Total       int                   `json:"total"`
	RefreshedAt string                `json:"refreshedAt"`
}

func refreshedAt(store *catalog.Store) string {
	return classify.FormatDateTime(store.RefreshedAt())
}

// ListProductsHandler returns the classified rows of the current selection.
func ListProductsHandler(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		selected := catalog.Select(store.All(), catalog.ParseFilter(q.Get), catalog.ParseSort(q.Get))
		records := classify.ClassifyAll(selected)
		if records == nil {
			records = []model.DisplayRecord{}
		}
		web.WriteJSON(w, http.StatusOK, productList{
			Products:    records,
			Count:       len(records),
			Total:       store.Len(),
			RefreshedAt: refreshedAt(store),
		})
	}
}

// AddProductHandler creates a product and reloads the working set.
func AddProductHandler(api Adder, store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.NewProductInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			web.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		in.Name = strings.TrimSpace(in.Name)
		in.Category = strings.TrimSpace(in.Category)
		if in.Name == "" || in.Category == "" {
			web.WriteJSONError(w, "Product name and category are required", http.StatusBadRequest)
			return
		}

		if err := api.AddProduct(r.Context(), in); err != nil {
			web.WriteBackendError(w, "adding product", err)
			return
		}
		if err := store.Refresh(r.Context()); err != nil {
			log.Printf("WARN: product %q added but the product list could not be reloaded: %v", in.Name, err)
		}
		web.WriteJSON(w, http.StatusCreated, map[string]string{"message": "Product added successfully"})
	}
}

// RefreshHandler reloads the working set from the backend.
func RefreshHandler(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Refresh(r.Context()); err != nil {
			web.WriteBackendError(w, "loading products", err)
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]any{
			"count":       store.Len(),
			"refreshedAt": refreshedAt(store),
		})
	}
}

// DetailHandler returns the detail view of one product as JSON.
func DetailHandler(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := store.Find(r.PathValue("id"))
		if !ok {
			web.WriteJSONError(w, "Product not found", http.StatusNotFound)
			return
		}
		web.WriteJSON(w, http.StatusOK, classify.Details(p))
	}
}

// DetailViewHandler returns the detail view of one product as an HTML fragment.
func DetailViewHandler(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := store.Find(r.PathValue("id"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(render.ProductDetailHTML(classify.Details(p))))
	}
}

// PageHandler serves the product page with the table rendered server-side.
func PageHandler(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := catalog.ParseFilter(q.Get)
		srt := catalog.ParseSort(q.Get)
		selected := catalog.Select(store.All(), f, srt)

		data := render.PageData{
			Categories:     store.Categories(),
			CategoryCounts: store.CategoryCounts(),
			Category:       f.Category,
			Search:         f.Search,
			SortBy:         srt.Key,
			SortOrder:      srt.Order,
			Records:        classify.ClassifyAll(selected),
		}
		if t := store.RefreshedAt(); !t.IsZero() {
			data.RefreshedAt = t.Format(time.DateTime)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(render.ProductPageHTML(data)))
	}
}
