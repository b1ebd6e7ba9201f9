package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"reportsvc/internal/domain"
	"reportsvc/internal/domain/models"
	"reportsvc/internal/domain/services"
	"reportsvc/internal/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testToken = "Password123"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubProjects answers every call and counts them
type stubProjects struct {
	calls atomic.Int32
}

func (s *stubProjects) CreateProject(_ context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	s.calls.Add(1)
	return &models.Project{ID: "p1", Name: req.Name, Description: req.Description}, nil
}

func (s *stubProjects) GetProject(_ context.Context, id string) (*models.Project, error) {
	s.calls.Add(1)
	if id != "p1" {
		return nil, &domain.NotFoundError{Message: "project not found"}
	}
	return &models.Project{ID: id, Name: "n", Description: "d"}, nil
}

func (s *stubProjects) ListProjects(context.Context) ([]models.Project, error) {
	s.calls.Add(1)
	return []models.Project{}, nil
}

func (s *stubProjects) UpdateProject(_ context.Context, id string, req *services.UpdateProjectRequest) (*models.Project, error) {
	s.calls.Add(1)
	return &models.Project{ID: id, Name: req.Name, Description: req.Description}, nil
}

func (s *stubProjects) DeleteProject(context.Context, string) error {
	s.calls.Add(1)
	return nil
}

type stubReports struct {
	calls atomic.Int32
}

func (s *stubReports) CreateReport(_ context.Context, req *services.CreateReportRequest) (*models.Report, error) {
	s.calls.Add(1)
	return &models.Report{ID: "r1", Text: req.Text, ProjectID: req.ProjectID}, nil
}

func (s *stubReports) ListReportsByProject(context.Context, string) ([]models.Report, error) {
	s.calls.Add(1)
	return []models.Report{}, nil
}

func (s *stubReports) GetReport(_ context.Context, id string) (*models.Report, error) {
	s.calls.Add(1)
	return &models.Report{ID: id, Text: "t", ProjectID: "p1"}, nil
}

func (s *stubReports) UpdateReport(_ context.Context, id string, req *services.UpdateReportRequest) (*models.Report, error) {
	s.calls.Add(1)
	return &models.Report{ID: id, Text: req.Text}, nil
}

func (s *stubReports) DeleteReport(context.Context, string) error {
	s.calls.Add(1)
	return nil
}

func (s *stubReports) ListFrequentWordReports(context.Context) ([]models.Report, error) {
	s.calls.Add(1)
	return []models.Report{{ID: "freq", Text: "a a a", ProjectID: "p1"}}, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter() (http.Handler, *stubProjects, *stubReports) {
	projects := &stubProjects{}
	reports := &stubReports{}
	logger := discardLogger()

	return NewRouter(Dependencies{
		AuthToken:      testToken,
		CORSOrigins:    "http://localhost:3000",
		Logger:         logger,
		ProjectHandler: handler.NewProjectHandler(projects, logger),
		ReportHandler:  handler.NewReportHandler(reports, logger),
		HealthHandler:  handler.NewHealthHandler(okPinger{}, logger),
	}), projects, reports
}

var allRoutes = []struct {
	method string
	path   string
	body   string
	status int
}{
	{http.MethodGet, "/health", "", http.StatusOK},
	{http.MethodPost, "/projects", `{"name":"n","description":"d"}`, http.StatusCreated},
	{http.MethodGet, "/projects", "", http.StatusOK},
	{http.MethodGet, "/projects/p1", "", http.StatusOK},
	{http.MethodPut, "/projects/p1", `{"name":"n","description":"d"}`, http.StatusOK},
	{http.MethodDelete, "/projects/p1", "", http.StatusNoContent},
	{http.MethodPost, "/projects/p1/reports", `{"text":"t"}`, http.StatusCreated},
	{http.MethodGet, "/projects/p1/reports", "", http.StatusOK},
	{http.MethodGet, "/reports/frequent-word", "", http.StatusOK},
	{http.MethodGet, "/reports/r1", "", http.StatusOK},
	{http.MethodPut, "/reports/r1", `{"text":"t"}`, http.StatusOK},
	{http.MethodDelete, "/reports/r1", "", http.StatusNoContent},
}

func do(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		r.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestRouter_RejectsEveryRouteWithoutCredential(t *testing.T) {
	router, projects, reports := newTestRouter()

	for _, rt := range allRoutes {
		for _, token := range []string{"", "wrong"} {
			rec := do(router, rt.method, rt.path, rt.body, token)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s token=%q", rt.method, rt.path, token)
			assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
		}
	}

	assert.Zero(t, projects.calls.Load())
	assert.Zero(t, reports.calls.Load())
}

func TestRouter_DispatchesEveryRoute(t *testing.T) {
	router, _, _ := newTestRouter()

	for _, rt := range allRoutes {
		rec := do(router, rt.method, rt.path, rt.body, testToken)
		assert.Equal(t, rt.status, rec.Code, "%s %s", rt.method, rt.path)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	}
}

func TestRouter_FrequentWordIsNotAReportID(t *testing.T) {
	router, _, _ := newTestRouter()

	rec := do(router, http.MethodGet, "/reports/frequent-word", "", testToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"freq","text":"a a a","projectId":"p1"}]`, rec.Body.String())
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	router, projects, reports := newTestRouter()

	for _, path := range []string{"/nope", "/", "/projects/p1/reports/r1", "/reports"} {
		rec := do(router, http.MethodGet, path, "", testToken)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), path)
		assert.JSONEq(t, `{"message":"Not found"}`, rec.Body.String(), path)
	}

	tests := []struct {
		method string
		path   string
		allow  string
	}{
		{http.MethodPatch, "/projects/p1", "GET, PUT, DELETE"},
		{http.MethodDelete, "/projects", "GET, POST"},
		{http.MethodPut, "/projects/p1/reports", "GET, POST"},
		{http.MethodPost, "/reports/r1", "GET, PUT, DELETE"},
		{http.MethodPost, "/health", "GET"},
	}
	for _, tt := range tests {
		rec := do(router, tt.method, tt.path, "", testToken)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.allow, rec.Header().Get("Allow"))
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"message":"Method not allowed"}`, rec.Body.String())
	}

	assert.Zero(t, projects.calls.Load())
	assert.Zero(t, reports.calls.Load())

	// unknown paths are still behind the gate
	rec := do(router, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router, _, _ := newTestRouter()

	r := httptest.NewRequest(http.MethodOptions, "/projects", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	router, _, _ := newTestRouter()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New("0", router)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, srv, ln, 2*time.Second, discardLogger())
	}()

	req, err := http.NewRequest(http.MethodGet, "http://"+ln.Addr().String()+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", testToken)

	client := &http.Client{
		Timeout:   2 * time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
