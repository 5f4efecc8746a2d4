package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"seopages-backend-go/internal/models"
)

// PostgresStore implements ContentStore over Postgres via sqlx.
type PostgresStore struct {
	DB *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

const uniqueViolation = "23505"

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}

func (s *PostgresStore) CreateProject(ctx context.Context, project models.Project) error {
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO projects (id, user_id, domain, path_prefix, project_key, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`, project.ID, project.UserID, project.Domain, project.PathPrefix, project.ProjectKey,
		project.Status, project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", mapError(err))
	}
	return nil
}

func (s *PostgresStore) GetProject(ctx context.Context, id string) (models.Project, error) {
	var project models.Project
	if err := s.DB.GetContext(ctx, &project, `
SELECT id, user_id, domain, path_prefix, project_key, status, created_at, updated_at
FROM projects
WHERE id = $1
`, id); err != nil {
		return models.Project{}, mapError(err)
	}
	return project, nil
}

func (s *PostgresStore) GetActiveProjectByKey(ctx context.Context, key string) (models.Project, error) {
	var project models.Project
	if err := s.DB.GetContext(ctx, &project, `
SELECT id, user_id, domain, path_prefix, project_key, status, created_at, updated_at
FROM projects
WHERE project_key = $1 AND status = 'active'
`, key); err != nil {
		return models.Project{}, mapError(err)
	}
	return project, nil
}

func (s *PostgresStore) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	projects := []models.Project{}
	if err := s.DB.SelectContext(ctx, &projects, `
SELECT id, user_id, domain, path_prefix, project_key, status, created_at, updated_at
FROM projects
WHERE user_id = $1
ORDER BY created_at DESC
`, userID); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *PostgresStore) UpdateProject(ctx context.Context, id, domain, pathPrefix string) error {
	res, err := s.DB.ExecContext(ctx, `
UPDATE projects
SET domain = $2, path_prefix = $3, updated_at = now()
WHERE id = $1
`, id, domain, pathPrefix)
	if err != nil {
		return fmt.Errorf("update project: %w", mapError(err))
	}
	return requireRow(res)
}

func (s *PostgresStore) UpdateProjectStatus(ctx context.Context, id, status string) error {
	res, err := s.DB.ExecContext(ctx, `
UPDATE projects
SET status = $2, updated_at = now()
WHERE id = $1
`, id, status)
	if err != nil {
		return fmt.Errorf("update project status: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) DeleteProject(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) CreatePage(ctx context.Context, page models.Page) error {
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO pages (id, project_id, path, title, content, meta_description, meta_keywords, status, view_count, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`, page.ID, page.ProjectID, page.Path, page.Title, page.Content,
		page.MetaDescription, page.MetaKeywords, page.Status, page.ViewCount,
		page.CreatedAt, page.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert page: %w", mapError(err))
	}
	return nil
}

func (s *PostgresStore) GetPage(ctx context.Context, id string) (models.Page, error) {
	var page models.Page
	if err := s.DB.GetContext(ctx, &page, `
SELECT id, project_id, path, title, content, meta_description, meta_keywords, status, view_count, created_at, updated_at
FROM pages
WHERE id = $1
`, id); err != nil {
		return models.Page{}, mapError(err)
	}
	return page, nil
}

func (s *PostgresStore) GetPublishedPage(ctx context.Context, projectID, path string) (models.Page, error) {
	var page models.Page
	if err := s.DB.GetContext(ctx, &page, `
SELECT id, project_id, path, title, content, meta_description, meta_keywords, status, view_count, created_at, updated_at
FROM pages
WHERE project_id = $1 AND path = $2 AND status = 'published'
`, projectID, path); err != nil {
		return models.Page{}, mapError(err)
	}
	return page, nil
}

func (s *PostgresStore) ListPages(ctx context.Context, projectID string) ([]models.Page, error) {
	pages := []models.Page{}
	if err := s.DB.SelectContext(ctx, &pages, `
SELECT id, project_id, path, title, content, meta_description, meta_keywords, status, view_count, created_at, updated_at
FROM pages
WHERE project_id = $1
ORDER BY path ASC
`, projectID); err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

func (s *PostgresStore) UpdatePage(ctx context.Context, page models.Page) error {
	res, err := s.DB.ExecContext(ctx, `
UPDATE pages
SET path = $2, title = $3, content = $4, meta_description = $5, meta_keywords = $6, status = $7, updated_at = now()
WHERE id = $1
`, page.ID, page.Path, page.Title, page.Content, page.MetaDescription, page.MetaKeywords, page.Status)
	if err != nil {
		return fmt.Errorf("update page: %w", mapError(err))
	}
	return requireRow(res)
}

func (s *PostgresStore) DeletePage(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) InsertPageView(ctx context.Context, view models.PageView) error {
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO page_views (id, page_id, viewed_at, referer, user_agent)
VALUES ($1,$2,$3,$4,$5)
`, view.ID, view.PageID, view.ViewedAt, view.Referer, view.UserAgent)
	if err != nil {
		return fmt.Errorf("insert page view: %w", mapError(err))
	}
	return nil
}

func (s *PostgresStore) IncrementViewCount(ctx context.Context, pageID string) error {
	_, err := s.DB.ExecContext(ctx, `
UPDATE pages SET view_count = view_count + 1 WHERE id = $1
`, pageID)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListPageViews(ctx context.Context, projectID string, limit int) ([]models.PageView, error) {
	views := []models.PageView{}
	if err := s.DB.SelectContext(ctx, &views, `
SELECT v.id, v.page_id, v.viewed_at, v.referer, v.user_agent
FROM page_views v
JOIN pages p ON p.id = v.page_id
WHERE p.project_id = $1
ORDER BY v.viewed_at DESC
LIMIT $2
`, projectID, limit); err != nil {
		return nil, fmt.Errorf("list page views: %w", err)
	}
	return views, nil
}

func (s *PostgresStore) CountPageViews(ctx context.Context, pageID string) (int64, error) {
	var total int64
	if err := s.DB.GetContext(ctx, &total, `
SELECT count(*) FROM page_views WHERE page_id = $1
`, pageID); err != nil {
		return 0, fmt.Errorf("count page views: %w", err)
	}
	return total, nil
}

// ReconcileViewCounts trues view_count up from the page_views rows and
// returns the number of corrected pages.
func (s *PostgresStore) ReconcileViewCounts(ctx context.Context) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `
UPDATE pages p
SET view_count = v.cnt
FROM (SELECT page_id, count(*) AS cnt FROM page_views GROUP BY page_id) v
WHERE p.id = v.page_id AND p.view_count <> v.cnt
`)
	if err != nil {
		return 0, fmt.Errorf("reconcile view counts: %w", err)
	}
	corrected, _ := res.RowsAffected()

	res, err = s.DB.ExecContext(ctx, `
UPDATE pages
SET view_count = 0
WHERE view_count <> 0
  AND NOT EXISTS (SELECT 1 FROM page_views WHERE page_id = pages.id)
`)
	if err != nil {
		return corrected, fmt.Errorf("reconcile orphan counts: %w", err)
	}
	zeroed, _ := res.RowsAffected()
	return corrected + zeroed, nil
}

func (s *PostgresStore) Close() error {
	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("close postgres: %w", err)
	}
	return nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
