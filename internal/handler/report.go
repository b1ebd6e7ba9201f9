package handler

import (
	"log/slog"
	"net/http"

	"reportsvc/internal/domain/services"
	"reportsvc/internal/httputil"
)

const reportNotFound = "Report not found"

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService services.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService services.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// CreateReport creates a report under the project in the path
// POST /projects/{projectId}/reports
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req services.CreateReportRequest
	if !parseBody(w, r, &req) {
		return
	}
	req.ProjectID = r.PathValue("projectId")

	report, err := h.reportService.CreateReport(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err, reportNotFound)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, report)
}

// ListReportsByProject lists the reports of a project
// GET /projects/{projectId}/reports
func (h *ReportHandler) ListReportsByProject(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportService.ListReportsByProject(r.Context(), r.PathValue("projectId"))
	if err != nil {
		// the only not-found case here is a missing parent
		handleError(w, r, h.logger, err, projectNotFound)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, reports)
}

// GetReport retrieves a report by ID
// GET /reports/{id}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.GetReport(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err, reportNotFound)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}

// UpdateReport replaces a report's text
// PUT /reports/{id}
func (h *ReportHandler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateReportRequest
	if !parseBody(w, r, &req) {
		return
	}

	report, err := h.reportService.UpdateReport(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, r, h.logger, err, reportNotFound)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}

// DeleteReport deletes a report
// DELETE /reports/{id}
func (h *ReportHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := h.reportService.DeleteReport(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, h.logger, err, reportNotFound)
		return
	}

	httputil.RespondNoContent(w)
}

// ListFrequentWordReports returns reports in which some word appears at least three times
// GET /reports/frequent-word
func (h *ReportHandler) ListFrequentWordReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportService.ListFrequentWordReports(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err, reportNotFound)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, reports)
}
