package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"seopages-backend-go/internal/models"
)

type PageViewDTO struct {
	ID        string  `json:"id"`
	PageID    string  `json:"pageId"`
	ViewedAt  string  `json:"viewedAt"`
	Referer   *string `json:"referer"`
	UserAgent *string `json:"userAgent"`
}

type ViewCountResponse struct {
	Total     int64 `json:"total"`
	ViewCount int64 `json:"viewCount"`
}

// ListProjectViews returns raw page-view rows, newest first. The
// dashboard does its own referrer categorization; the backend never
// interprets the header values.
func (s *Server) ListProjectViews(w http.ResponseWriter, r *http.Request) {
	project, ok := s.ownedProject(w, r)
	if !ok {
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), 100)
	if limit > 500 {
		limit = 500
	}
	views, err := s.Store.ListPageViews(r.Context(), project.ID, limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	items := make([]PageViewDTO, 0, len(views))
	for _, view := range views {
		items = append(items, viewDTO(view))
	}
	WriteJSON(w, http.StatusOK, map[string][]PageViewDTO{"items": items})
}

// PageViewCount reports both the denormalized counter and the row count;
// the two converge but may briefly disagree.
func (s *Server) PageViewCount(w http.ResponseWriter, r *http.Request) {
	page, ok := s.ownedPage(w, r)
	if !ok {
		return
	}
	total, err := s.Store.CountPageViews(r.Context(), page.ID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, ViewCountResponse{Total: total, ViewCount: page.ViewCount})
}

// ViewsSocket streams live page-view events to the dashboard.
func (s *Server) ViewsSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" || token != s.Config.AdminToken {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.ViewHub.Add(conn)
	defer func() {
		s.ViewHub.Remove(conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func viewDTO(view models.PageView) PageViewDTO {
	return PageViewDTO{
		ID:        view.ID,
		PageID:    view.PageID,
		ViewedAt:  formatTime(view.ViewedAt),
		Referer:   view.Referer,
		UserAgent: view.UserAgent,
	}
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
