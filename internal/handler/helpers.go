package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"reportsvc/internal/domain"
	"reportsvc/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// Anything implementing domain.HTTPError picks its own status; everything
// else is a 500. notFound is the message used for a 404, e.g. "Project not found".
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, notFound string) {
	var httpErr domain.HTTPError
	if !errors.As(err, &httpErr) {
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", httputil.GetRequestID(r),
			"error", err,
		)
		httputil.RespondErrorDetail(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	switch status := httpErr.StatusCode(); status {
	case http.StatusNotFound:
		httputil.RespondError(w, status, notFound)
	case http.StatusBadRequest:
		httputil.RespondErrorDetail(w, status, "Invalid request", httpErr.Error())
	default:
		httputil.RespondError(w, status, httpErr.Error())
	}
}

// parseBody decodes the request body and writes a 400 (or 413) when it can't.
// Returns false if a response has already been written.
func parseBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := httputil.ParseJSON(w, r, dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		httputil.RespondErrorDetail(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}
