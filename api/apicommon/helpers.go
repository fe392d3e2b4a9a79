// Package apicommon provides the response helpers shared by the API and the
// object storage handlers.
package apicommon

import (
	"encoding/json"
	"net/http"

	"go.vocdoni.io/dvote/log"
)

// HTTPWriteJSON helper function allows to write a JSON response.
func HTTPWriteJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warnw("failed to encode response", "error", err)
	}
}

// HTTPWriteText writes a plain text response.
func HTTPWriteText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}
