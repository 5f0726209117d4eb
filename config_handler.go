package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"stockdesk/config"
	"stockdesk/web"
)

// GetConfigHandler returns the current settings.
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		web.WriteJSON(w, http.StatusOK, config.GetConfig())
	}
}

// SaveConfigHandler validates and stores new settings. They take effect on the next start.
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			web.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := validateBackendURL(newCfg.BackendURL); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if newCfg.RequestTimeoutSeconds < 0 {
			web.WriteJSONError(w, "requestTimeoutSeconds must not be negative", http.StatusBadRequest)
			return
		}

		if err := config.SaveConfig(newCfg); err != nil {
			log.Printf("ERROR: saving config: %v", err)
			web.WriteJSONError(w, "Failed to save settings", http.StatusInternalServerError)
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]string{"message": "Settings saved. Restart to apply them."})
	}
}

func validateBackendURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return errors.New("backendURL is not a valid URL: " + raw)
	}
	if s := strings.ToLower(u.Scheme); s != "http" && s != "https" {
		return errors.New("backendURL must use http or https: " + raw)
	}
	return nil
}
