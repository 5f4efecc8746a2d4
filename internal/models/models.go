package models

import "time"

const (
	ProjectStatusPending  = "pending"
	ProjectStatusActive   = "active"
	ProjectStatusInactive = "inactive"

	PageStatusDraft     = "draft"
	PageStatusPublished = "published"
	PageStatusOffline   = "offline"
)

// Project is a registered domain + path prefix, addressed externally by
// its opaque project_key. Only active projects resolve in the proxy.
type Project struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Domain     string    `db:"domain"`
	PathPrefix string    `db:"path_prefix"`
	ProjectKey string    `db:"project_key"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Page is an authored HTML document under a project, unique by
// (project_id, path). Only published pages resolve in the proxy.
type Page struct {
	ID              string    `db:"id"`
	ProjectID       string    `db:"project_id"`
	Path            string    `db:"path"`
	Title           string    `db:"title"`
	Content         string    `db:"content"`
	MetaDescription string    `db:"meta_description"`
	MetaKeywords    string    `db:"meta_keywords"`
	Status          string    `db:"status"`
	ViewCount       int64     `db:"view_count"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// PageView records one successful proxied access. Append-only.
type PageView struct {
	ID        string    `db:"id"`
	PageID    string    `db:"page_id"`
	ViewedAt  time.Time `db:"viewed_at"`
	Referer   *string   `db:"referer"`
	UserAgent *string   `db:"user_agent"`
}

func ValidProjectStatus(status string) bool {
	switch status {
	case ProjectStatusPending, ProjectStatusActive, ProjectStatusInactive:
		return true
	}
	return false
}

func ValidPageStatus(status string) bool {
	switch status {
	case PageStatusDraft, PageStatusPublished, PageStatusOffline:
		return true
	}
	return false
}
