package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"reportsvc/internal/config"
)

// ParseJSON decodes JSON from the request body into the given destination.
// The body is capped at config.MaxRequestBodyBytes; an oversized body yields
// an error wrapping *http.MaxBytesError.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodyBytes)

	// Unknown fields are ignored; required fields are checked by the services.
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
