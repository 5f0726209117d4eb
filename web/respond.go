// Package web holds the JSON response helpers shared by the HTTP handlers.
package web

import (
	"encoding/json"
	"log"
	"net/http"

	"stockdesk/backend"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("WARN: failed to encode JSON response: %v", err)
	}
}

// WriteJSONError writes {"message": message} with the given status.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, statusCode, map[string]string{"message": message})
}

// WriteBackendError reports a failed backend call. Client errors the backend
// raised (4xx, a duplicate roll included) keep their status and message;
// everything else, network failures included, becomes 502.
func WriteBackendError(w http.ResponseWriter, action string, err error) {
	log.Printf("ERROR: %s: %v", action, err)

	if status := backend.StatusCode(err); status >= 400 && status < 500 {
		WriteJSONError(w, "Error "+action+": "+backend.Message(err), status)
		return
	}
	WriteJSONError(w, "Error "+action+": "+err.Error(), http.StatusBadGateway)
}
