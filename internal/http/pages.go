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
	"seopages-backend-go/internal/store"
)

type PageRequest struct {
	Path            string `json:"path"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	MetaDescription string `json:"metaDescription"`
	MetaKeywords    string `json:"metaKeywords"`
	Status          string `json:"status"`
}

type PageDTO struct {
	ID              string `json:"id"`
	ProjectID       string `json:"projectId"`
	Path            string `json:"path"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	MetaDescription string `json:"metaDescription"`
	MetaKeywords    string `json:"metaKeywords"`
	Status          string `json:"status"`
	ViewCount       int64  `json:"viewCount"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func pageDTO(page models.Page) PageDTO {
	return PageDTO{
		ID:              page.ID,
		ProjectID:       page.ProjectID,
		Path:            page.Path,
		Title:           page.Title,
		Content:         page.Content,
		MetaDescription: page.MetaDescription,
		MetaKeywords:    page.MetaKeywords,
		Status:          page.Status,
		ViewCount:       page.ViewCount,
		CreatedAt:       formatTime(page.CreatedAt),
		UpdatedAt:       formatTime(page.UpdatedAt),
	}
}

func (s *Server) CreatePage(w http.ResponseWriter, r *http.Request) {
	project, ok := s.ownedProject(w, r)
	if !ok {
		return
	}
	var req PageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := validatePageFields(&req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	now := time.Now().UTC()
	page := models.Page{
		ID:              uuid.NewString(),
		ProjectID:       project.ID,
		Path:            req.Path,
		Title:           req.Title,
		Content:         req.Content,
		MetaDescription: req.MetaDescription,
		MetaKeywords:    req.MetaKeywords,
		Status:          models.PageStatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Store.CreatePage(r.Context(), page); err != nil {
		if errors.Is(err, store.ErrConflict) {
			WriteError(w, http.StatusConflict, "A page with this path already exists")
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusCreated, pageDTO(page))
}

func (s *Server) ListPages(w http.ResponseWriter, r *http.Request) {
	project, ok := s.ownedProject(w, r)
	if !ok {
		return
	}
	pages, err := s.Store.ListPages(r.Context(), project.ID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]PageDTO, 0, len(pages))
	for _, page := range pages {
		items = append(items, pageDTO(page))
	}
	WriteJSON(w, http.StatusOK, map[string][]PageDTO{"items": items})
}

func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	page, ok := s.ownedPage(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, pageDTO(page))
}

func (s *Server) UpdatePage(w http.ResponseWriter, r *http.Request) {
	page, ok := s.ownedPage(w, r)
	if !ok {
		return
	}
	var req PageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Status == "" {
		req.Status = page.Status
	}
	if !models.ValidPageStatus(req.Status) {
		WriteError(w, http.StatusBadRequest, "Status must be draft, published or offline")
		return
	}
	if err := validatePageFields(&req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	page.Path = req.Path
	page.Title = req.Title
	page.Content = req.Content
	page.MetaDescription = req.MetaDescription
	page.MetaKeywords = req.MetaKeywords
	page.Status = req.Status
	if err := s.Store.UpdatePage(r.Context(), page); err != nil {
		if errors.Is(err, store.ErrConflict) {
			WriteError(w, http.StatusConflict, "A page with this path already exists")
			return
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, pageDTO(page))
}

func (s *Server) DeletePage(w http.ResponseWriter, r *http.Request) {
	page, ok := s.ownedPage(w, r)
	if !ok {
		return
	}
	if err := s.Store.DeletePage(r.Context(), page.ID); err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ownedPage loads the routed page and checks the owner chain through its
// project. Pages of other users read as 404.
func (s *Server) ownedPage(w http.ResponseWriter, r *http.Request) (models.Page, bool) {
	userID := CurrentUserID(r)
	if userID == "" {
		WriteError(w, http.StatusUnauthorized, "Missing user identity")
		return models.Page{}, false
	}
	pageID := chi.URLParam(r, "pageId")
	page, err := s.Store.GetPage(r.Context(), pageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Page not found")
			return models.Page{}, false
		}
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return models.Page{}, false
	}
	project, err := s.Store.GetProject(r.Context(), page.ProjectID)
	if err != nil || project.UserID != userID {
		WriteError(w, http.StatusNotFound, "Page not found")
		return models.Page{}, false
	}
	return page, true
}

func validatePageFields(req *PageRequest) error {
	req.Path = strings.TrimSpace(req.Path)
	if !strings.HasPrefix(req.Path, "/") {
		return errors.New("Path must start with /")
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return errors.New("Title is required")
	}
	return nil
}
