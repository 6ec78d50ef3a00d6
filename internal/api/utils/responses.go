package utils

import (
	"net/http"

	"github.com/goccy/go-json"
)

// MessageResponse is the envelope for every non-data answer.
type MessageResponse struct {
	Message       string   `json:"message"`
	Code          string   `json:"code,omitempty"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

func WriteMessage(w http.ResponseWriter, status int, message, code string) {
	WriteJSON(w, status, MessageResponse{Message: message, Code: code})
}

func WriteError(w http.ResponseWriter, status int, message, code string, missing []string) {
	WriteJSON(w, status, MessageResponse{
		Message:       message,
		Code:          code,
		MissingFields: missing,
	})
}

func WriteNotFound(w http.ResponseWriter) {
	WriteMessage(w, http.StatusNotFound, "Not found", "NOT_FOUND")
}

func WriteMethodNotAllowed(w http.ResponseWriter) {
	WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
