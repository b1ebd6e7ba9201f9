package seed

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"

	"reportsvc/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/default.yaml
var defaultFixture []byte

// Fixture is the YAML document consumed by the seed command
type Fixture struct {
	Projects []ProjectFixture `yaml:"projects"`
}

// ProjectFixture is one project and the reports created under it
type ProjectFixture struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Reports     []ReportFixture `yaml:"reports"`
}

// ReportFixture is one report
type ReportFixture struct {
	Text string `yaml:"text"`
}

// Validate checks that every project and report has its required fields
func (f Fixture) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Projects),
	)
}

// Validate implements validation.Validatable
func (p ProjectFixture) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Description, validation.Required),
		validation.Field(&p.Reports),
	)
}

// Validate implements validation.Validatable
func (r ReportFixture) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required),
	)
}

// DefaultFixture returns the embedded sample data
func DefaultFixture() (*Fixture, error) {
	return ParseFixture(defaultFixture)
}

// LoadFixture reads and validates a fixture from r
func LoadFixture(r io.Reader) (*Fixture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes and validates a YAML fixture
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	return &f, nil
}

// Result counts what a Seed run created
type Result struct {
	Projects int
	Reports  int
}

// Seeder creates fixture data through the service layer so ids and
// validation follow the same rules as the HTTP API.
type Seeder struct {
	projects services.ProjectService
	reports  services.ReportService
	logger   *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(projects services.ProjectService, reports services.ReportService, logger *slog.Logger) *Seeder {
	return &Seeder{
		projects: projects,
		reports:  reports,
		logger:   logger,
	}
}

// Seed creates every project in f followed by its reports.
// It stops at the first failure; whatever was created before stays.
func (s *Seeder) Seed(ctx context.Context, f *Fixture) (Result, error) {
	var res Result

	for _, pf := range f.Projects {
		project, err := s.projects.CreateProject(ctx, &services.CreateProjectRequest{
			Name:        pf.Name,
			Description: pf.Description,
		})
		if err != nil {
			return res, fmt.Errorf("create project %q: %w", pf.Name, err)
		}
		res.Projects++

		for _, rf := range pf.Reports {
			if _, err := s.reports.CreateReport(ctx, &services.CreateReportRequest{
				ProjectID: project.ID,
				Text:      rf.Text,
			}); err != nil {
				return res, fmt.Errorf("create report in %q: %w", pf.Name, err)
			}
			res.Reports++
		}

		s.logger.Debug("seeded project",
			"id", project.ID,
			"name", project.Name,
			"reports", len(pf.Reports),
		)
	}

	return res, nil
}
