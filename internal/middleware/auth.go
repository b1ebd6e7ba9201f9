package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"reportsvc/internal/domain"
	"reportsvc/internal/httputil"
)

// SharedSecret rejects every request whose Authorization header is not
// exactly token. Rejected requests never reach next.
func SharedSecret(token string, logger *slog.Logger) func(http.Handler) http.Handler {
	expected := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get("Authorization"))
			if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
				denied := &domain.UnauthorizedError{Message: "Unauthorized"}
				logger.Debug("rejected request",
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", httputil.GetRequestID(r),
				)
				httputil.RespondError(w, denied.StatusCode(), denied.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
