// Package store defines the content store consumed by the proxy and
// management surfaces. The interface keeps the HTTP layer independent of
// Postgres so tests and local runs can use the in-memory implementation.
package store

import (
	"context"
	"errors"

	"seopages-backend-go/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update violates a unique
// constraint (one project per user per domain, one page per project per path,
// globally unique project keys).
var ErrConflict = errors.New("already exists")

// ContentStore persists projects, pages and page views. The unique
// constraints named above are enforced by the implementation, not callers.
type ContentStore interface {
	CreateProject(ctx context.Context, project models.Project) error
	GetProject(ctx context.Context, id string) (models.Project, error)
	GetActiveProjectByKey(ctx context.Context, key string) (models.Project, error)
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)
	UpdateProject(ctx context.Context, id, domain, pathPrefix string) error
	UpdateProjectStatus(ctx context.Context, id, status string) error
	DeleteProject(ctx context.Context, id string) error

	CreatePage(ctx context.Context, page models.Page) error
	GetPage(ctx context.Context, id string) (models.Page, error)
	GetPublishedPage(ctx context.Context, projectID, path string) (models.Page, error)
	ListPages(ctx context.Context, projectID string) ([]models.Page, error)
	UpdatePage(ctx context.Context, page models.Page) error
	DeletePage(ctx context.Context, id string) error

	InsertPageView(ctx context.Context, view models.PageView) error
	IncrementViewCount(ctx context.Context, pageID string) error
	ListPageViews(ctx context.Context, projectID string, limit int) ([]models.PageView, error)
	CountPageViews(ctx context.Context, pageID string) (int64, error)
	ReconcileViewCounts(ctx context.Context) (int64, error)

	Close() error
}
