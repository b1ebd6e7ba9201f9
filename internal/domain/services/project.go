package services

import (
	"context"

	"reportsvc/internal/domain/models"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateProjectRequest represents a request to update a project
type UpdateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// CreateProject creates a new project
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)

	// GetProject retrieves a project by ID
	GetProject(ctx context.Context, id string) (*models.Project, error)

	// ListProjects retrieves all projects
	ListProjects(ctx context.Context) ([]models.Project, error)

	// UpdateProject replaces a project's name and description
	UpdateProject(ctx context.Context, id string, req *UpdateProjectRequest) (*models.Project, error)

	// DeleteProject deletes a project together with all of its reports
	DeleteProject(ctx context.Context, id string) error
}
