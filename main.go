package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-chi/cors"

	"stockdesk/backend"
	"stockdesk/catalog"
	"stockdesk/config"
	"stockdesk/loader"
)

func main() {
	configPath := flag.String("config", "", "settings file (default ./stockdesk_config.json)")
	noBrowser := flag.Bool("no-browser", false, "do not open the product page on start")
	flag.Parse()

	if *configPath != "" {
		config.SetPath(*configPath)
	}
	if _, err := config.LoadConfig(); err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
	}
	cfg := config.GetConfig()

	log.Println("Connecting to database...")
	dbConn, err := loader.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer dbConn.Close()

	if err := loader.InitDatabase(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	api := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout())
	store := catalog.NewStore(api, dbConn)
	if err := store.Load(); err != nil {
		log.Printf("WARN: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	if err := store.Refresh(ctx); err != nil {
		log.Printf("WARN: Backend %s unreachable at start-up. Serving %d cached products.", api.BaseURL(), store.Len())
	}
	cancel()

	mux := http.NewServeMux()
	SetupRoutes(mux, dbConn, api, store)

	handler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	})(mux)

	addr := cfg.ListenAddr
	pageURL := "http://" + addr
	if strings.HasPrefix(addr, ":") {
		pageURL = "http://localhost" + addr
	}
	log.Printf("Starting server on %s (backend %s)", pageURL, api.BaseURL())

	if !*noBrowser {
		openBrowser(pageURL)
	}

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}
