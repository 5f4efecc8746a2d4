package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"seopages-backend-go/internal/metrics"
	"seopages-backend-go/internal/models"
	"seopages-backend-go/internal/store"
)

// ViewRecorder appends a PageView and bumps the page's denormalized
// counter after a successful resolve. Recording is fire-and-forget: the
// request handler never waits on it and never sees its errors. A dropped
// event degrades analytics only; serving the page must not block on
// write durability.
type ViewRecorder struct {
	store   store.ContentStore
	hub     *ViewHub
	timeout time.Duration
	log     *zap.Logger
}

// NewViewRecorder builds a ViewRecorder. hub may be nil.
func NewViewRecorder(contentStore store.ContentStore, hub *ViewHub, log *zap.Logger) *ViewRecorder {
	return &ViewRecorder{store: contentStore, hub: hub, timeout: 5 * time.Second, log: log}
}

// Record dispatches the write on a detached goroutine. The context is
// derived from Background, not the request: cancellation of the parent
// request must not cancel an in-flight recorder write.
func (vr *ViewRecorder) Record(pageID string, referer, userAgent *string) {
	view := models.PageView{
		ID:        uuid.NewString(),
		PageID:    pageID,
		ViewedAt:  time.Now().UTC(),
		Referer:   referer,
		UserAgent: userAgent,
	}
	go vr.record(view)
}

func (vr *ViewRecorder) record(view models.PageView) {
	ctx, cancel := context.WithTimeout(context.Background(), vr.timeout)
	defer cancel()

	if err := vr.store.InsertPageView(ctx, view); err != nil {
		vr.log.Warn("page view dropped", zap.String("page_id", view.PageID), zap.Error(err))
		metrics.ObserveViewRecordFailure()
		return
	}
	// The counter is eventually consistent with page_views; the
	// reconciler trues it up if this increment is lost.
	if err := vr.store.IncrementViewCount(ctx, view.PageID); err != nil {
		vr.log.Warn("view count increment failed", zap.String("page_id", view.PageID), zap.Error(err))
		metrics.ObserveViewRecordFailure()
	}
	if vr.hub != nil {
		vr.hub.Broadcast(view)
	}
}
