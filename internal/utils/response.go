package utils

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as the response body with the given status. Every
// handler answers through this helper so success and error payloads
// share one shape.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
