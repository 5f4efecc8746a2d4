package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"seopages-backend-go/internal/cache"
	"seopages-backend-go/internal/metrics"
	"seopages-backend-go/internal/models"
	"seopages-backend-go/internal/store"
)

// ErrProjectNotFound means the key matched no active project.
var ErrProjectNotFound = errors.New("project not found")

// ErrPageNotFound means the project resolved but no published page
// exists at the path.
var ErrPageNotFound = errors.New("page not found")

// Resolved is a successful resolution: an active project and one of its
// published pages.
type Resolved struct {
	Project models.Project
	Page    models.Page
}

// Resolver maps an opaque project key + request path to a servable page.
// It is a pure read: no side effects, no retries. Store failures fail
// closed as the matching not-found error so unverifiable content is
// never served, but they are logged and counted separately.
type Resolver struct {
	store   store.ContentStore
	cache   *cache.ResolveCache
	timeout time.Duration
	log     *zap.Logger
}

// NewResolver builds a Resolver. cache may be nil to disable caching.
func NewResolver(contentStore store.ContentStore, resolveCache *cache.ResolveCache, timeout time.Duration, log *zap.Logger) *Resolver {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Resolver{store: contentStore, cache: resolveCache, timeout: timeout, log: log}
}

// Resolve looks up the active project by key, then the published page by
// (project, path). Each lookup runs under its own bounded timeout.
func (r *Resolver) Resolve(ctx context.Context, projectKey, requestPath string) (Resolved, error) {
	path := NormalizePath(requestPath)

	if r.cache != nil {
		if entry, ok := r.cache.Get(ctx, projectKey, path); ok {
			return Resolved{Project: entry.Project, Page: entry.Page}, nil
		}
	}

	projectCtx, cancel := context.WithTimeout(ctx, r.timeout)
	project, err := r.store.GetActiveProjectByKey(projectCtx, projectKey)
	cancel()
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			r.log.Error("project lookup failed, serving not found",
				zap.String("project_key", projectKey), zap.Error(err))
			metrics.ObserveResolveStoreError()
		}
		return Resolved{}, ErrProjectNotFound
	}

	pageCtx, cancel := context.WithTimeout(ctx, r.timeout)
	page, err := r.store.GetPublishedPage(pageCtx, project.ID, path)
	cancel()
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			r.log.Error("page lookup failed, serving not found",
				zap.String("project_id", project.ID), zap.String("path", path), zap.Error(err))
			metrics.ObserveResolveStoreError()
		}
		return Resolved{}, ErrPageNotFound
	}

	if r.cache != nil {
		r.cache.Set(ctx, projectKey, path, cache.Entry{Project: project, Page: page})
	}
	return Resolved{Project: project, Page: page}, nil
}

// NormalizePath guarantees a leading-slash path; empty normalizes to "/".
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}
