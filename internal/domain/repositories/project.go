package repositories

import (
	"context"

	"reportsvc/internal/domain/models"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	// Create inserts a project whose ID was generated by the caller
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by ID
	GetByID(ctx context.Context, id string) (*models.Project, error)

	// List retrieves all projects in insertion order
	List(ctx context.Context) ([]models.Project, error)

	// Update overwrites name and description.
	// Returns a *domain.NotFoundError when no row matched.
	Update(ctx context.Context, project *models.Project) error

	// Delete removes the project row only; dependent reports are handled by the service.
	// Returns a *domain.NotFoundError when no row matched.
	Delete(ctx context.Context, id string) error
}
