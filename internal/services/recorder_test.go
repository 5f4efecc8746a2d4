package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seopages-backend-go/internal/models"
	"seopages-backend-go/internal/store"
)

func TestRecorderConvergence(t *testing.T) {
	t.Parallel()
	s := store.NewMemoryStore()
	project := seedProject(t, s, models.ProjectStatusActive)
	page := seedPage(t, s, project.ID, "/intro", models.PageStatusPublished)

	recorder := NewViewRecorder(s, nil, zap.NewNop())
	referer := "https://chat.openai.com/"
	agent := "test-agent"
	const hits = 10
	for i := 0; i < hits; i++ {
		recorder.Record(page.ID, &referer, &agent)
	}

	// Fire-and-forget: the writes land eventually, never synchronously.
	assert.Eventually(t, func() bool {
		total, err := s.CountPageViews(context.Background(), page.ID)
		if err != nil || total != hits {
			return false
		}
		got, err := s.GetPage(context.Background(), page.ID)
		return err == nil && got.ViewCount == hits
	}, 2*time.Second, 10*time.Millisecond)

	views, err := s.ListPageViews(context.Background(), project.ID, 100)
	require.NoError(t, err)
	require.Len(t, views, hits)
	assert.Equal(t, referer, *views[0].Referer)
	assert.Equal(t, agent, *views[0].UserAgent)
}

func TestRecorderNilHeaders(t *testing.T) {
	t.Parallel()
	s := store.NewMemoryStore()
	project := seedProject(t, s, models.ProjectStatusActive)
	page := seedPage(t, s, project.ID, "/intro", models.PageStatusPublished)

	recorder := NewViewRecorder(s, nil, zap.NewNop())
	recorder.Record(page.ID, nil, nil)

	assert.Eventually(t, func() bool {
		total, err := s.CountPageViews(context.Background(), page.ID)
		return err == nil && total == 1
	}, 2*time.Second, 10*time.Millisecond)

	views, err := s.ListPageViews(context.Background(), project.ID, 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].Referer)
	assert.Nil(t, views[0].UserAgent)
}

func TestRecorderSwallowsStoreFailures(t *testing.T) {
	t.Parallel()
	s := store.NewMemoryStore()

	recorder := NewViewRecorder(s, nil, zap.NewNop())
	// Unknown page: the insert fails, nothing surfaces to the caller.
	recorder.Record("missing-page", nil, nil)

	time.Sleep(50 * time.Millisecond)
	corrected, err := s.ReconcileViewCounts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, corrected)
}
