package service

import (
	"context"
	"log/slog"

	"reportsvc/internal/config"
	"reportsvc/internal/domain"
	"reportsvc/internal/domain/models"
	"reportsvc/internal/domain/repositories"
	"reportsvc/internal/domain/services"
	"reportsvc/internal/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// reportService implements the ReportService interface
type reportService struct {
	reportRepo repositories.ReportRepository
	validator  *ResourceValidator
	logger     *slog.Logger
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repositories.ReportRepository,
	validator *ResourceValidator,
	logger *slog.Logger,
) services.ReportService {
	return &reportService{
		reportRepo: reportRepo,
		validator:  validator,
		logger:     logger,
	}
}

// CreateReport creates a report under req.ProjectID.
// The project is not looked up, so orphan reports can be created.
func (s *reportService) CreateReport(ctx context.Context, req *services.CreateReportRequest) (*models.Report, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Text, validation.Required),
	)
	if err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	report := &models.Report{
		ID:        uuid.NewString(),
		Text:      req.Text,
		ProjectID: req.ProjectID,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info("report created",
		"id", report.ID,
		"project_id", report.ProjectID,
	)

	return report, nil
}

// ListReportsByProject returns the reports of an existing project
func (s *reportService) ListReportsByProject(ctx context.Context, projectID string) ([]models.Report, error) {
	if err := s.validator.ValidateProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.reportRepo.ListByProject(ctx, projectID)
}

// GetReport retrieves a report by ID
func (s *reportService) GetReport(ctx context.Context, id string) (*models.Report, error) {
	return s.reportRepo.GetByID(ctx, id)
}

// UpdateReport replaces the text of a report. The returned report carries
// only id and text.
func (s *reportService) UpdateReport(ctx context.Context, id string, req *services.UpdateReportRequest) (*models.Report, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Text, validation.Required),
	)
	if err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	if err := s.reportRepo.UpdateText(ctx, id, req.Text); err != nil {
		return nil, err
	}

	s.logger.Info("report updated", "id", id)

	return &models.Report{ID: id, Text: req.Text}, nil
}

// DeleteReport deletes a report
func (s *reportService) DeleteReport(ctx context.Context, id string) error {
	if err := s.reportRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("report deleted", "id", id)
	return nil
}

// ListFrequentWordReports scans every report and keeps those with a word
// occurring at least config.FrequentWordMinCount times. Recomputed on every call.
func (s *reportService) ListFrequentWordReports(ctx context.Context) ([]models.Report, error) {
	all, err := s.reportRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Report, 0, len(all))
	for _, report := range all {
		if utils.HasFrequentWord(report.Text, config.FrequentWordMinCount) {
			matched = append(matched, report)
		}
	}

	s.logger.Debug("frequent word scan",
		"scanned", len(all),
		"matched", len(matched),
	)

	return matched, nil
}
