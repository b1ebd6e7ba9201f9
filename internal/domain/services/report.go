package services

import (
	"context"

	"reportsvc/internal/domain/models"
)

// CreateReportRequest represents a request to create a report.
// ProjectID comes from the URL path, not the body.
type CreateReportRequest struct {
	ProjectID string `json:"-"`
	Text      string `json:"text"`
}

// UpdateReportRequest represents a request to update a report
type UpdateReportRequest struct {
	Text string `json:"text"`
}

// ReportService defines business logic operations for reports
type ReportService interface {
	// CreateReport creates a report under a project.
	// The parent project is not checked for existence.
	CreateReport(ctx context.Context, req *CreateReportRequest) (*models.Report, error)

	// ListReportsByProject returns the reports of an existing project
	ListReportsByProject(ctx context.Context, projectID string) ([]models.Report, error)

	// GetReport retrieves a report by ID
	GetReport(ctx context.Context, id string) (*models.Report, error)

	// UpdateReport replaces a report's text and returns the id and new text
	UpdateReport(ctx context.Context, id string, req *UpdateReportRequest) (*models.Report, error)

	// DeleteReport deletes a report
	DeleteReport(ctx context.Context, id string) error

	// ListFrequentWordReports returns every report containing a word repeated
	// at least config.FrequentWordMinCount times
	ListFrequentWordReports(ctx context.Context) ([]models.Report, error)
}
