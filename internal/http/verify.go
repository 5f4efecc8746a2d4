package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const verifyUserAgent = "SEO-Pages-Verification/1.0"

type verifyResult struct {
	Success    bool   `json:"success"`
	ProjectKey string `json:"projectKey,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Verify fetches a caller-supplied URL and reports whether it answers
// like this service's /__verify__ endpoint. The setup wizard uses it to
// confirm the user's site forwards the path prefix before a project is
// activated.
func (s *Server) Verify(w http.ResponseWriter, r *http.Request) {
	target := strings.TrimSpace(r.URL.Query().Get("url"))
	if target == "" {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "URL is required"})
		return
	}

	client := &http.Client{Timeout: time.Duration(s.Config.VerifyTimeoutSeconds) * time.Second}
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		WriteJSON(w, http.StatusOK, verifyResult{Success: false, Error: err.Error()})
		return
	}
	req.Header.Set("User-Agent", verifyUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		WriteJSON(w, http.StatusOK, verifyResult{Success: false, Error: err.Error()})
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		WriteJSON(w, http.StatusOK, verifyResult{
			Success: false,
			Error:   fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		})
		return
	}

	var body struct {
		Success    bool   `json:"success"`
		ProjectKey string `json:"projectKey"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || !body.Success || body.ProjectKey == "" {
		WriteJSON(w, http.StatusOK, verifyResult{Success: false, Error: "Invalid verification response"})
		return
	}
	WriteJSON(w, http.StatusOK, verifyResult{Success: true, ProjectKey: body.ProjectKey})
}
