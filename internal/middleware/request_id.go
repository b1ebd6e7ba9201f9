package middleware

import (
	"net/http"

	"reportsvc/internal/httputil"

	"github.com/google/uuid"
)

// RequestID ensures each request has an ID in context and response headers.
// A client-supplied X-Request-ID is kept.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(httputil.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(httputil.RequestIDHeader, id)
		next.ServeHTTP(w, httputil.WithRequestID(r, id))
	})
}
