package repositories

import (
	"context"

	"reportsvc/internal/domain/models"
)

// ReportRepository defines data access operations for reports
type ReportRepository interface {
	// Create inserts a report whose ID was generated by the caller
	Create(ctx context.Context, report *models.Report) error

	// GetByID retrieves a report by ID
	GetByID(ctx context.Context, id string) (*models.Report, error)

	// ListByProject retrieves the reports of one project in insertion order
	ListByProject(ctx context.Context, projectID string) ([]models.Report, error)

	// ListAll scans every report in insertion order
	ListAll(ctx context.Context) ([]models.Report, error)

	// UpdateText overwrites the text of a report.
	// Returns a *domain.NotFoundError when no row matched.
	UpdateText(ctx context.Context, id, text string) error

	// Delete removes a report.
	// Returns a *domain.NotFoundError when no row matched.
	Delete(ctx context.Context, id string) error

	// DeleteByProject removes every report referencing projectID and returns how many were removed
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
}
