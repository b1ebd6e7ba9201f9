package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reportsvc/internal/domain"
	"reportsvc/internal/domain/models"
	"reportsvc/internal/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockProjectService struct {
	mock.Mock
}

func (m *mockProjectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*models.Project)
	return p, args.Error(1)
}

func (m *mockProjectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Project)
	return p, args.Error(1)
}

func (m *mockProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]models.Project)
	return p, args.Error(1)
}

func (m *mockProjectService) UpdateProject(ctx context.Context, id string, req *services.UpdateProjectRequest) (*models.Project, error) {
	args := m.Called(ctx, id, req)
	p, _ := args.Get(0).(*models.Project)
	return p, args.Error(1)
}

func (m *mockProjectService) DeleteProject(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) CreateReport(ctx context.Context, req *services.CreateReportRequest) (*models.Report, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*models.Report)
	return r, args.Error(1)
}

func (m *mockReportService) ListReportsByProject(ctx context.Context, projectID string) ([]models.Report, error) {
	args := m.Called(ctx, projectID)
	r, _ := args.Get(0).([]models.Report)
	return r, args.Error(1)
}

func (m *mockReportService) GetReport(ctx context.Context, id string) (*models.Report, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Report)
	return r, args.Error(1)
}

func (m *mockReportService) UpdateReport(ctx context.Context, id string, req *services.UpdateReportRequest) (*models.Report, error) {
	args := m.Called(ctx, id, req)
	r, _ := args.Get(0).(*models.Report)
	return r, args.Error(1)
}

func (m *mockReportService) DeleteReport(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReportService) ListFrequentWordReports(ctx context.Context) ([]models.Report, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.Report)
	return r, args.Error(1)
}

func newRequest(method, target, body string, pathValues ...string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	for i := 0; i+1 < len(pathValues); i += 2 {
		r.SetPathValue(pathValues[i], pathValues[i+1])
	}
	return r
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHealthHandler(fakePinger{}, discardLogger()).HealthCheck(rec, newRequest(http.MethodGet, "/health", ""))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("database down", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHealthHandler(fakePinger{err: errors.New("dial tcp: refused")}, discardLogger()).
			HealthCheck(rec, newRequest(http.MethodGet, "/health", ""))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", &domain.ValidationError{Message: "name: cannot be blank."}, http.StatusBadRequest, `{"message":"Invalid request","error":"name: cannot be blank."}`},
		{"not found", &domain.NotFoundError{Message: "project x not found"}, http.StatusNotFound, `{"message":"Thing not found"}`},
		{"wrapped not found", fmt.Errorf("invalid project: %w", &domain.NotFoundError{Message: "project x not found"}), http.StatusNotFound, `{"message":"Thing not found"}`},
		{"unauthorized", &domain.UnauthorizedError{Message: "Unauthorized"}, http.StatusUnauthorized, `{"message":"Unauthorized"}`},
		{"conflict", &domain.ConflictError{Message: "project already exists"}, http.StatusConflict, `{"message":"project already exists"}`},
		{"storage", errors.New("relation does not exist"), http.StatusInternalServerError, `{"message":"Internal server error","error":"relation does not exist"}`},
		{"bare sentinel is not an HTTP error", domain.ErrNotFound, http.StatusInternalServerError, `{"message":"Internal server error","error":"not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, newRequest(http.MethodGet, "/", ""), discardLogger(), tt.err, "Thing not found")
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}
