// internal/handlers/utils.go
package handlers

import (
	"encoding/json"
	"net/http"
)

// writeJSON encodes v with the given status. Encoding failures are
// ignored: headers are already out by then.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
