package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"reportsvc/internal/domain/models"
	"reportsvc/internal/domain/services"
	"reportsvc/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProjects struct {
	services.ProjectService
	created []string
	failOn  string
}

func (r *recordingProjects) CreateProject(_ context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	if req.Name == r.failOn {
		return nil, errors.New("insert failed")
	}
	r.created = append(r.created, req.Name)
	return &models.Project{ID: fmt.Sprintf("p%d", len(r.created)), Name: req.Name, Description: req.Description}, nil
}

type recordingReports struct {
	services.ReportService
	byProject map[string][]string
}

func (r *recordingReports) CreateReport(_ context.Context, req *services.CreateReportRequest) (*models.Report, error) {
	if r.byProject == nil {
		r.byProject = make(map[string][]string)
	}
	r.byProject[req.ProjectID] = append(r.byProject[req.ProjectID], req.Text)
	return &models.Report{ID: "r", Text: req.Text, ProjectID: req.ProjectID}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultFixture(t *testing.T) {
	f, err := DefaultFixture()
	require.NoError(t, err)
	require.NotEmpty(t, f.Projects)

	frequent := 0
	for _, p := range f.Projects {
		for _, r := range p.Reports {
			if utils.HasFrequentWord(r.Text, 3) {
				frequent++
			}
		}
	}
	assert.Positive(t, frequent, "sample data should exercise the frequent-word query")
}

func TestLoadFixture_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "projects: [\n"},
		{"project without name", "projects:\n  - description: d\n"},
		{"report without text", "projects:\n  - name: n\n    description: d\n    reports:\n      - text: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFixture(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestSeeder_Seed(t *testing.T) {
	f, err := ParseFixture([]byte(`
projects:
  - name: A
    description: first
    reports:
      - text: one
      - text: two
  - name: B
    description: second
`))
	require.NoError(t, err)

	projects := &recordingProjects{}
	reports := &recordingReports{}

	res, err := NewSeeder(projects, reports, discardLogger()).Seed(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, Result{Projects: 2, Reports: 2}, res)
	assert.Equal(t, []string{"A", "B"}, projects.created)
	assert.Equal(t, []string{"one", "two"}, reports.byProject["p1"])
	assert.Empty(t, reports.byProject["p2"])
}

func TestSeeder_StopsOnFirstError(t *testing.T) {
	f := &Fixture{Projects: []ProjectFixture{
		{Name: "ok", Description: "d"},
		{Name: "bad", Description: "d"},
		{Name: "never", Description: "d"},
	}}
	projects := &recordingProjects{failOn: "bad"}

	res, err := NewSeeder(projects, &recordingReports{}, discardLogger()).Seed(context.Background(), f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad"`)
	assert.Equal(t, 1, res.Projects)
	assert.Equal(t, []string{"ok"}, projects.created)
}
