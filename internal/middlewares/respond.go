package middlewares

import (
	"encoding/json"
	"net/http"
)

// respondError writes the error body shape shared with the handler layer:
// {"error": message}.
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
