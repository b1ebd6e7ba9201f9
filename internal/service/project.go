package service

import (
	"context"
	"log/slog"

	"reportsvc/internal/domain"
	"reportsvc/internal/domain/models"
	"reportsvc/internal/domain/repositories"
	"reportsvc/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo repositories.ProjectRepository
	reportRepo  repositories.ReportRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	reportRepo repositories.ReportRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		reportRepo:  reportRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateProject creates a new project
func (s *projectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	if err := validateCreateProject(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	project := &models.Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"name", project.Name,
	)

	return project, nil
}

// GetProject retrieves a project by ID
func (s *projectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

// ListProjects retrieves all projects
func (s *projectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.projectRepo.List(ctx)
}

// UpdateProject replaces name and description. The result is built from the
// request rather than re-read from storage.
func (s *projectService) UpdateProject(ctx context.Context, id string, req *services.UpdateProjectRequest) (*models.Project, error) {
	if err := validateUpdateProject(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	project := &models.Project{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", project.ID,
		"name", project.Name,
	)

	return project, nil
}

// DeleteProject deletes a project and its reports in one transaction
func (s *projectService) DeleteProject(ctx context.Context, id string) error {
	var removed int64

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		// Verify project exists first (provides better error message)
		if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
			return err
		}

		if err := s.projectRepo.Delete(ctx, id); err != nil {
			return err
		}

		n, err := s.reportRepo.DeleteByProject(ctx, id)
		if err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("project deleted",
		"id", id,
		"reports_deleted", removed,
	)

	return nil
}

func validateCreateProject(req *services.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Description, validation.Required),
	)
}

func validateUpdateProject(req *services.UpdateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Description, validation.Required),
	)
}
