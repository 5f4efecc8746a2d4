package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"seopages-backend-go/internal/models"
	"seopages-backend-go/internal/services"
	"seopages-backend-go/internal/store"
)

type ProjectCreateRequest struct {
	Domain     string `json:"domain"`
	PathPrefix string `json:"pathPrefix"`
}

type ProjectUpdateRequest struct {
	Domain     string `json:"domain"`
	PathPrefix string `json:"pathPrefix"`
}

type ProjectStatusRequest struct {
	Status string `json:"status"`
}

type ProjectDTO struct {
	ID            string `json:"id"`
	Domain        string `json:"domain"`
	PathPrefix    string `json:"pathPrefix"`
	ProjectKey    string `json:"projectKey"`
	ProxyEndpoint string `json:"proxyEndpoint"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func (s *Server) projectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:            project.ID,
		Domain:        project.Domain,
		PathPrefix:    project.PathPrefix,
		ProjectKey:    project.ProjectKey,
		ProxyEndpoint: s.Config.PublicBaseURL + "/api/proxy/" + project.ProjectKey,
		Status:        project.Status,
		CreatedAt:     formatTime(project.CreatedAt),
		UpdatedAt:     formatTime(project.UpdatedAt),
	}
}

func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID := CurrentUserID(r)
	if userID == "" {
		WriteError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}
	var req ProjectCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	domain, pathPrefix, err := validateProjectFields(req.Domain, req.PathPrefix)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	key, err := services.NewProjectKey()
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	now := time.Now().UTC()
	project := models.Project{
		ID:         uuid.NewString(),
		UserID:     userID,
		Domain:     domain,
		PathPrefix: pathPrefix,
		ProjectKey: key,
		Status:     models.ProjectStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Store.CreateProject(r.Context(), project); err != nil {
		if errors.Is(err, store.ErrConflict) {
			WriteError(w, http.StatusConflict, "You already have a project for this domain")
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, s.projectDTO(project))
}

func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID := CurrentUserID(r)
	if userID == "" {
		WriteError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}
	projects, err := s.Store.ListProjects(r.Context(), userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]ProjectDTO, 0, len(projects))
	for _, project := range projects {
		items = append(items, s.projectDTO(project))
	}
	WriteJSON(w, http.StatusOK, map[string][]ProjectDTO{"items": items})
}

func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	project, ok := s.ownedProject(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, s.projectDTO(project))
}

func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	project, ok := s.ownedProject(w, r)
	if !ok {
		return
	}
	var req ProjectUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	domain, pathPrefix, err := validateProjectFields(req.Domain, req.PathPrefix)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.Store.UpdateProject(r.Context(), project.ID, domain, pathPrefix); err != nil {
		if errors.Is(err, store.ErrConflict) {
			WriteError(w, http.StatusConflict, "You already have a project for this domain")
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	project.Domain = domain
	project.PathPrefix = pathPrefix
	WriteJSON(w, http.StatusOK, s.projectDTO(project))
}

func (s *Server) UpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	project, ok := s.ownedProject(w, r)
	if !ok {
		return
	}
	var req ProjectStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if !models.ValidProjectStatus(req.Status) {
		WriteError(w, http.StatusBadRequest, "Status must be pending, active or inactive")
		return
	}
	if err := s.Store.UpdateProjectStatus(r.Context(), project.ID, req.Status); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	project.Status = req.Status
	WriteJSON(w, http.StatusOK, s.projectDTO(project))
}

func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	project, ok := s.ownedProject(w, r)
	if !ok {
		return
	}
	if err := s.Store.DeleteProject(r.Context(), project.ID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ownedProject loads the routed project and enforces ownership. A
// project owned by someone else reads as 404 so project ids cannot be
// probed.
func (s *Server) ownedProject(w http.ResponseWriter, r *http.Request) (models.Project, bool) {
	userID := CurrentUserID(r)
	if userID == "" {
		WriteError(w, http.StatusUnauthorized, "Missing user identity")
		return models.Project{}, false
	}
	projectID := chi.URLParam(r, "projectId")
	project, err := s.Store.GetProject(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Project not found")
			return models.Project{}, false
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return models.Project{}, false
	}
	if project.UserID != userID {
		WriteError(w, http.StatusNotFound, "Project not found")
		return models.Project{}, false
	}
	return project, true
}

func validateProjectFields(domain, pathPrefix string) (string, string, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return "", "", services.ErrBadRequest("Domain is required")
	}
	pathPrefix = strings.TrimSpace(pathPrefix)
	if !strings.HasPrefix(pathPrefix, "/") {
		return "", "", services.ErrBadRequest("Path prefix must start with /")
	}
	return domain, pathPrefix, nil
}
