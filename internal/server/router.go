package server

import (
	"log/slog"
	"net/http"
	"strings"

	"reportsvc/internal/handler"
	"reportsvc/internal/httputil"
	"reportsvc/internal/middleware"

	"github.com/rs/cors"
)

// Dependencies are the pieces NewRouter wires together
type Dependencies struct {
	AuthToken      string
	CORSOrigins    string
	RateLimitRPS   float64
	RateLimitBurst int
	TrustedProxies middleware.TrustedProxies
	Logger         *slog.Logger

	ProjectHandler *handler.ProjectHandler
	ReportHandler  *handler.ReportHandler
	HealthHandler  *handler.HealthHandler
}

// NewRouter registers every route and wraps the mux in the middleware chain.
// Order (outermost first): CORS → RequestID → Logging → Recovery → SharedSecret → RateLimit → routes
func NewRouter(dep Dependencies) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", dep.HealthHandler.HealthCheck)

	// Project routes
	mux.HandleFunc("POST /projects", dep.ProjectHandler.CreateProject)
	mux.HandleFunc("GET /projects", dep.ProjectHandler.ListProjects)
	mux.HandleFunc("GET /projects/{id}", dep.ProjectHandler.GetProject)
	mux.HandleFunc("PUT /projects/{id}", dep.ProjectHandler.UpdateProject)
	mux.HandleFunc("DELETE /projects/{id}", dep.ProjectHandler.DeleteProject)

	// Project-scoped report routes
	mux.HandleFunc("POST /projects/{projectId}/reports", dep.ReportHandler.CreateReport)
	mux.HandleFunc("GET /projects/{projectId}/reports", dep.ReportHandler.ListReportsByProject)

	// Report routes
	mux.HandleFunc("GET /reports/frequent-word", dep.ReportHandler.ListFrequentWordReports) // more specific than {id}
	mux.HandleFunc("GET /reports/{id}", dep.ReportHandler.GetReport)
	mux.HandleFunc("PUT /reports/{id}", dep.ReportHandler.UpdateReport)
	mux.HandleFunc("DELETE /reports/{id}", dep.ReportHandler.DeleteReport)

	// Known paths with an unsupported method, then everything else
	mux.Handle("/health", methodNotAllowed("GET"))
	mux.Handle("/projects", methodNotAllowed("GET", "POST"))
	mux.Handle("/projects/{id}", methodNotAllowed("GET", "PUT", "DELETE"))
	mux.Handle("/projects/{projectId}/reports", methodNotAllowed("GET", "POST"))
	mux.Handle("/reports/{id}", methodNotAllowed("GET", "PUT", "DELETE"))
	mux.HandleFunc("/", notFound)

	// Apply middleware in reverse order (they wrap each other)
	var h http.Handler = mux
	h = middleware.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst, dep.TrustedProxies)(h)
	h = middleware.SharedSecret(dep.AuthToken, dep.Logger)(h)
	h = middleware.Recovery(dep.Logger)(h)
	h = middleware.Logging(dep.Logger)(h)
	h = middleware.RequestID(h)

	// CORS - Must be outermost so pre-flight requests are answered without credentials
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(dep.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})
	return corsHandler.Handler(h)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	httputil.RespondError(w, http.StatusNotFound, "Not found")
}

func methodNotAllowed(allowed ...string) http.Handler {
	allow := strings.Join(allowed, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		httputil.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}
