package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"reportsvc/internal/domain"
	"reportsvc/internal/domain/models"
	"reportsvc/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresReportRepository implements the ReportRepository interface
type PostgresReportRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewReportRepository creates a new report repository
func NewReportRepository(config *RepositoryConfig) repositories.ReportRepository {
	return &PostgresReportRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new report
func (r *PostgresReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, text, project_id)
		VALUES (@id, @text, @projectId)
	`, r.tables.Reports)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, pgx.NamedArgs{
		"id":        report.ID,
		"text":      report.Text,
		"projectId": report.ProjectID,
	})
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("report '%s' already exists", report.ID),
				ResourceType: "report",
				ResourceID:   report.ID,
			}
		}
		return fmt.Errorf("create report: %w", err)
	}

	return nil
}

// GetByID retrieves a report by ID
func (r *PostgresReportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	query := fmt.Sprintf(`
		SELECT id, text, project_id
		FROM %s
		WHERE id = @id
	`, r.tables.Reports)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	report, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Report])
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("report %s not found", id)}
		}
		return nil, fmt.Errorf("get report: %w", err)
	}

	return &report, nil
}

// ListByProject retrieves the reports of one project
func (r *PostgresReportRepository) ListByProject(ctx context.Context, projectID string) ([]models.Report, error) {
	query := fmt.Sprintf(`
		SELECT id, text, project_id
		FROM %s
		WHERE project_id = @projectId
		ORDER BY seq
	`, r.tables.Reports)

	return r.list(ctx, query, pgx.NamedArgs{"projectId": projectID})
}

// ListAll scans the whole reports table. There is no index or paging behind
// this; it is only used by the frequent-word query.
func (r *PostgresReportRepository) ListAll(ctx context.Context) ([]models.Report, error) {
	query := fmt.Sprintf(`
		SELECT id, text, project_id
		FROM %s
		ORDER BY seq
	`, r.tables.Reports)

	return r.list(ctx, query, pgx.NamedArgs{})
}

func (r *PostgresReportRepository) list(ctx context.Context, query string, args pgx.NamedArgs) ([]models.Report, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	reports, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Report])
	if err != nil {
		return nil, fmt.Errorf("scan reports: %w", err)
	}

	if reports == nil {
		reports = []models.Report{}
	}

	return reports, nil
}

// UpdateText overwrites a report's text
func (r *PostgresReportRepository) UpdateText(ctx context.Context, id, text string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET text = @text
		WHERE id = @id
	`, r.tables.Reports)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, pgx.NamedArgs{"id": id, "text": text})
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("report %s not found", id)}
	}

	return nil
}

// Delete removes a report
func (r *PostgresReportRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = @id`, r.tables.Reports)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("report %s not found", id)}
	}

	return nil
}

// DeleteByProject removes every report of a project
func (r *PostgresReportRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = @projectId`, r.tables.Reports)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, pgx.NamedArgs{"projectId": projectID})
	if err != nil {
		return 0, fmt.Errorf("delete project reports: %w", err)
	}

	r.logger.Debug("reports deleted for project", "project_id", projectID, "count", result.RowsAffected())
	return result.RowsAffected(), nil
}
