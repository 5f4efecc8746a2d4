package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"seopages-backend-go/internal/metrics"
	"seopages-backend-go/internal/render"
	"seopages-backend-go/internal/services"
)

const verifyPath = "/__verify__"

type verifyEcho struct {
	Success    bool   `json:"success"`
	ProjectKey string `json:"projectKey"`
	Timestamp  string `json:"timestamp"`
}

// Proxy serves the public entry: GET /api/proxy/{projectKey}/{*path}.
// The synthetic /__verify__ path short-circuits before any store lookup
// and echoes the key from the URL, proving only that the proxy wiring
// reaches this endpoint.
func (s *Server) Proxy(w http.ResponseWriter, r *http.Request) {
	projectKey := chi.URLParam(r, "projectKey")
	pagePath := services.NormalizePath(chi.URLParam(r, "*"))

	if pagePath == verifyPath {
		metrics.ObserveProxyRequest("verify")
		WriteJSON(w, http.StatusOK, verifyEcho{
			Success:    true,
			ProjectKey: projectKey,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	resolved, err := s.Resolver.Resolve(r.Context(), projectKey, pagePath)
	if err != nil {
		if errors.Is(err, services.ErrPageNotFound) {
			metrics.ObserveProxyRequest("page_miss")
			WriteHTML(w, http.StatusNotFound,
				render.ErrorPage("Page Not Found", "The requested page does not exist."))
			return
		}
		metrics.ObserveProxyRequest("project_miss")
		WriteHTML(w, http.StatusNotFound,
			render.ErrorPage("Project Not Found", "This project does not exist or is not active."))
		return
	}

	s.Recorder.Record(resolved.Page.ID, headerPtr(r, "Referer"), headerPtr(r, "User-Agent"))

	html := render.Page(render.PageData{
		Title:           resolved.Page.Title,
		Content:         resolved.Page.Content,
		MetaDescription: resolved.Page.MetaDescription,
		MetaKeywords:    resolved.Page.MetaKeywords,
		Domain:          resolved.Project.Domain,
		Path:            resolved.Project.PathPrefix + resolved.Page.Path,
	})
	metrics.ObserveProxyRequest("hit")
	w.Header().Set("Cache-Control", "public, max-age=60, s-maxage=300")
	WriteHTML(w, http.StatusOK, html)
}

func headerPtr(r *http.Request, name string) *string {
	value := r.Header.Get(name)
	if value == "" {
		return nil
	}
	return &value
}
