package service

import (
	"context"
	"fmt"

	"reportsvc/internal/domain/repositories"
)

// ResourceValidator checks that parent resources exist before operating on children
type ResourceValidator struct {
	projectRepo repositories.ProjectRepository
}

// NewResourceValidator creates a new resource validator
func NewResourceValidator(projectRepo repositories.ProjectRepository) *ResourceValidator {
	return &ResourceValidator{projectRepo: projectRepo}
}

// ValidateProject ensures a project exists.
// Returns an error wrapping *domain.NotFoundError if it doesn't.
func (v *ResourceValidator) ValidateProject(ctx context.Context, projectID string) error {
	if _, err := v.projectRepo.GetByID(ctx, projectID); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}
	return nil
}
