package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"seopages-backend-go/internal/models"
)

// MemoryStore is an in-process ContentStore used by tests and
// DATABASE_URL=memory local runs. It enforces the same unique
// constraints as the Postgres schema.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]models.Project
	pages    map[string]models.Page
	views    []models.PageView
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: map[string]models.Project{},
		pages:    map[string]models.Page{},
	}
}

func (s *MemoryStore) CreateProject(_ context.Context, project models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.projects {
		if existing.ProjectKey == project.ProjectKey {
			return ErrConflict
		}
		if existing.UserID == project.UserID && existing.Domain == project.Domain {
			return ErrConflict
		}
	}
	s.projects[project.ID] = project
	return nil
}

func (s *MemoryStore) GetProject(_ context.Context, id string) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[id]
	if !ok {
		return models.Project{}, ErrNotFound
	}
	return project, nil
}

func (s *MemoryStore) GetActiveProjectByKey(_ context.Context, key string) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, project := range s.projects {
		if project.ProjectKey == key && project.Status == models.ProjectStatusActive {
			return project, nil
		}
	}
	return models.Project{}, ErrNotFound
}

func (s *MemoryStore) ListProjects(_ context.Context, userID string) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projects := []models.Project{}
	for _, project := range s.projects {
		if project.UserID == userID {
			projects = append(projects, project)
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func (s *MemoryStore) UpdateProject(_ context.Context, id, domain, pathPrefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return ErrNotFound
	}
	for _, existing := range s.projects {
		if existing.ID != id && existing.UserID == project.UserID && existing.Domain == domain {
			return ErrConflict
		}
	}
	project.Domain = domain
	project.PathPrefix = pathPrefix
	project.UpdatedAt = time.Now().UTC()
	s.projects[id] = project
	return nil
}

func (s *MemoryStore) UpdateProjectStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return ErrNotFound
	}
	project.Status = status
	project.UpdatedAt = time.Now().UTC()
	s.projects[id] = project
	return nil
}

func (s *MemoryStore) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return ErrNotFound
	}
	delete(s.projects, id)
	// Cascade to pages and their views, like the FK constraints.
	for pageID, page := range s.pages {
		if page.ProjectID == id {
			delete(s.pages, pageID)
			s.dropViewsLocked(pageID)
		}
	}
	return nil
}

func (s *MemoryStore) CreatePage(_ context.Context, page models.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.pages {
		if existing.ProjectID == page.ProjectID && existing.Path == page.Path {
			return ErrConflict
		}
	}
	s.pages[page.ID] = page
	return nil
}

func (s *MemoryStore) GetPage(_ context.Context, id string) (models.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[id]
	if !ok {
		return models.Page{}, ErrNotFound
	}
	return page, nil
}

func (s *MemoryStore) GetPublishedPage(_ context.Context, projectID, path string) (models.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, page := range s.pages {
		if page.ProjectID == projectID && page.Path == path && page.Status == models.PageStatusPublished {
			return page, nil
		}
	}
	return models.Page{}, ErrNotFound
}

func (s *MemoryStore) ListPages(_ context.Context, projectID string) ([]models.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pages := []models.Page{}
	for _, page := range s.pages {
		if page.ProjectID == projectID {
			pages = append(pages, page)
		}
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Path < pages[j].Path })
	return pages, nil
}

func (s *MemoryStore) UpdatePage(_ context.Context, page models.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.pages[page.ID]
	if !ok {
		return ErrNotFound
	}
	for _, existing := range s.pages {
		if existing.ID != page.ID && existing.ProjectID == current.ProjectID && existing.Path == page.Path {
			return ErrConflict
		}
	}
	current.Path = page.Path
	current.Title = page.Title
	current.Content = page.Content
	current.MetaDescription = page.MetaDescription
	current.MetaKeywords = page.MetaKeywords
	current.Status = page.Status
	current.UpdatedAt = time.Now().UTC()
	s.pages[page.ID] = current
	return nil
}

func (s *MemoryStore) DeletePage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[id]; !ok {
		return ErrNotFound
	}
	delete(s.pages, id)
	s.dropViewsLocked(id)
	return nil
}

func (s *MemoryStore) InsertPageView(_ context.Context, view models.PageView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[view.PageID]; !ok {
		return ErrNotFound
	}
	s.views = append(s.views, view)
	return nil
}

func (s *MemoryStore) IncrementViewCount(_ context.Context, pageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, ok := s.pages[pageID]
	if !ok {
		return ErrNotFound
	}
	page.ViewCount++
	s.pages[pageID] = page
	return nil
}

func (s *MemoryStore) ListPageViews(_ context.Context, projectID string, limit int) ([]models.PageView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	views := []models.PageView{}
	for _, view := range s.views {
		page, ok := s.pages[view.PageID]
		if ok && page.ProjectID == projectID {
			views = append(views, view)
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ViewedAt.After(views[j].ViewedAt) })
	if limit > 0 && len(views) > limit {
		views = views[:limit]
	}
	return views, nil
}

func (s *MemoryStore) CountPageViews(_ context.Context, pageID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, view := range s.views {
		if view.PageID == pageID {
			total++
		}
	}
	return total, nil
}

func (s *MemoryStore) ReconcileViewCounts(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[string]int64{}
	for _, view := range s.views {
		counts[view.PageID]++
	}
	var corrected int64
	for id, page := range s.pages {
		if page.ViewCount != counts[id] {
			page.ViewCount = counts[id]
			s.pages[id] = page
			corrected++
		}
	}
	return corrected, nil
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) dropViewsLocked(pageID string) {
	kept := s.views[:0]
	for _, view := range s.views {
		if view.PageID != pageID {
			kept = append(kept, view)
		}
	}
	s.views = kept
}
