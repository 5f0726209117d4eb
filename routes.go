package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"stockdesk/backend"
	"stockdesk/catalog"
	"stockdesk/product"
	"stockdesk/reports"
	"stockdesk/sku"
	"stockdesk/stock"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, api *backend.Client, store *catalog.Store) {
	mux.HandleFunc("GET /{$}", product.PageHandler(store))

	mux.HandleFunc("GET /api/products", product.ListProductsHandler(store))
	mux.HandleFunc("POST /api/products", product.AddProductHandler(api, store))
	mux.HandleFunc("POST /api/products/refresh", product.RefreshHandler(store))
	mux.HandleFunc("GET /api/products/export", product.ExportHandler(store, dbConn))
	mux.HandleFunc("GET /api/products/{id}", product.DetailHandler(store))
	mux.HandleFunc("GET /api/products/{id}/view", product.DetailViewHandler(store))
	mux.HandleFunc("GET /api/exports", product.ExportLogHandler(dbConn))

	mux.HandleFunc("POST /api/stock/in", stock.StockInHandler(api, store))
	mux.HandleFunc("POST /api/stock/in/detailed", stock.DetailedStockInHandler(api, store))
	mux.HandleFunc("POST /api/stock/in/detailed/confirm-duplicate", stock.ConfirmDuplicateHandler(api, store))
	mux.HandleFunc("POST /api/stock/out", stock.StockOutHandler(api, store))
	mux.HandleFunc("GET /api/stock", stock.SummaryHandler(api))
	mux.HandleFunc("GET /api/stock/sqmtr", stock.SqMtrHandler())
	mux.HandleFunc("GET /api/stock/template", stock.TemplateHandler())
	mux.HandleFunc("POST /api/stock/upload-excel", stock.UploadHandler(api, store))

	mux.HandleFunc("GET /api/reports", reports.ReportHandler(api))

	mux.HandleFunc("GET /api/sku/companies", sku.CompaniesHandler(api))
	mux.HandleFunc("POST /api/sku/generate", sku.GenerateHandler(api, store))
	mux.HandleFunc("POST /api/sku/check-duplicate", sku.CheckDuplicateHandler(api))
	mux.HandleFunc("GET /api/sku/shortform", sku.ShortFormHandler())

	mux.HandleFunc("GET /api/config", GetConfigHandler())
	mux.HandleFunc("POST /api/config", SaveConfigHandler())
}
