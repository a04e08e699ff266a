// Package respond provides small JSON response helpers for the worker's
// HTTP handlers, adapted from
// mycelian-ai-mycelian-memory/server/internal/api/respond.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}
