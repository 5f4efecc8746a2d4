package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seopages-backend-go/internal/models"
)

func testProject(userID, domain, key, status string) models.Project {
	now := time.Now().UTC()
	return models.Project{
		ID:         uuid.NewString(),
		UserID:     userID,
		Domain:     domain,
		PathPrefix: "/seo",
		ProjectKey: key,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func testPage(projectID, path, status string) models.Page {
	now := time.Now().UTC()
	return models.Page{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Path:      path,
		Title:     "Title",
		Content:   "<p>Hi</p>",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemoryStoreUniqueConstraints(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	user := uuid.NewString()
	require.NoError(t, s.CreateProject(ctx, testProject(user, "example.com", "pk_one", models.ProjectStatusActive)))

	// Same owner, same domain.
	err := s.CreateProject(ctx, testProject(user, "example.com", "pk_two", models.ProjectStatusActive))
	assert.ErrorIs(t, err, ErrConflict)

	// Same key, different owner.
	err = s.CreateProject(ctx, testProject(uuid.NewString(), "other.com", "pk_one", models.ProjectStatusActive))
	assert.ErrorIs(t, err, ErrConflict)

	// Different owner may reuse the domain.
	require.NoError(t, s.CreateProject(ctx, testProject(uuid.NewString(), "example.com", "pk_three", models.ProjectStatusActive)))
}

func TestMemoryStorePagePathUniquePerProject(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	project := testProject(uuid.NewString(), "example.com", "pk_abc", models.ProjectStatusActive)
	require.NoError(t, s.CreateProject(ctx, project))
	other := testProject(uuid.NewString(), "other.com", "pk_def", models.ProjectStatusActive)
	require.NoError(t, s.CreateProject(ctx, other))

	require.NoError(t, s.CreatePage(ctx, testPage(project.ID, "/intro", models.PageStatusPublished)))
	assert.ErrorIs(t, s.CreatePage(ctx, testPage(project.ID, "/intro", models.PageStatusDraft)), ErrConflict)
	// Same path in another project is fine.
	require.NoError(t, s.CreatePage(ctx, testPage(other.ID, "/intro", models.PageStatusPublished)))
}

func TestMemoryStoreActiveAndPublishedGates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	project := testProject(uuid.NewString(), "example.com", "pk_abc", models.ProjectStatusPending)
	require.NoError(t, s.CreateProject(ctx, project))

	_, err := s.GetActiveProjectByKey(ctx, "pk_abc")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.UpdateProjectStatus(ctx, project.ID, models.ProjectStatusActive))
	got, err := s.GetActiveProjectByKey(ctx, "pk_abc")
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)

	draft := testPage(project.ID, "/intro", models.PageStatusDraft)
	require.NoError(t, s.CreatePage(ctx, draft))
	_, err = s.GetPublishedPage(ctx, project.ID, "/intro")
	assert.ErrorIs(t, err, ErrNotFound)

	draft.Status = models.PageStatusPublished
	require.NoError(t, s.UpdatePage(ctx, draft))
	page, err := s.GetPublishedPage(ctx, project.ID, "/intro")
	require.NoError(t, err)
	assert.Equal(t, draft.ID, page.ID)
}

func TestMemoryStoreCascadeDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	project := testProject(uuid.NewString(), "example.com", "pk_abc", models.ProjectStatusActive)
	require.NoError(t, s.CreateProject(ctx, project))
	page := testPage(project.ID, "/intro", models.PageStatusPublished)
	require.NoError(t, s.CreatePage(ctx, page))
	require.NoError(t, s.InsertPageView(ctx, models.PageView{
		ID: uuid.NewString(), PageID: page.ID, ViewedAt: time.Now().UTC(),
	}))

	require.NoError(t, s.DeleteProject(ctx, project.ID))

	_, err := s.GetPage(ctx, page.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	total, err := s.CountPageViews(ctx, page.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestMemoryStoreReconcileViewCounts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryStore()

	project := testProject(uuid.NewString(), "example.com", "pk_abc", models.ProjectStatusActive)
	require.NoError(t, s.CreateProject(ctx, project))
	page := testPage(project.ID, "/intro", models.PageStatusPublished)
	require.NoError(t, s.CreatePage(ctx, page))

	// Three rows but only one recorded increment: skewed counter.
	for i := 0; i < 3; i++ {
		require.NoError(t, s.InsertPageView(ctx, models.PageView{
			ID: uuid.NewString(), PageID: page.ID, ViewedAt: time.Now().UTC(),
		}))
	}
	require.NoError(t, s.IncrementViewCount(ctx, page.ID))

	corrected, err := s.ReconcileViewCounts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, corrected)

	got, err := s.GetPage(ctx, page.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.ViewCount)

	// Already converged: nothing to correct.
	corrected, err = s.ReconcileViewCounts(ctx)
	require.NoError(t, err)
	assert.Zero(t, corrected)
}
