package handler

import (
	"log/slog"
	"net/http"

	"reportsvc/internal/domain/services"
	"reportsvc/internal/httputil"
)

const projectNotFound = "Project not found"

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	projectService services.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService services.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// CreateProject creates a new project
// POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req services.CreateProjectRequest
	if !parseBody(w, r, &req) {
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err, projectNotFound)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// ListProjects returns every project
// GET /projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.ListProjects(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err, projectNotFound)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projects)
}

// GetProject retrieves a project by ID
// GET /projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.GetProject(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err, projectNotFound)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// UpdateProject replaces a project's name and description
// PUT /projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateProjectRequest
	if !parseBody(w, r, &req) {
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, r, h.logger, err, projectNotFound)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// DeleteProject deletes a project and its reports
// DELETE /projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.projectService.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, h.logger, err, projectNotFound)
		return
	}

	httputil.RespondNoContent(w)
}
