package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"seopages-backend-go/internal/store"
)

// ReconcileLoop periodically trues each page's view_count up from the
// page_views rows, closing the skew the fire-and-forget recorder is
// allowed to leave behind.
func ReconcileLoop(ctx context.Context, contentStore store.ContentStore, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			corrected, err := contentStore.ReconcileViewCounts(ctx)
			if err != nil {
				log.Warn("view count reconcile failed", zap.Error(err))
				continue
			}
			if corrected > 0 {
				log.Info("view counts reconciled", zap.Int64("corrected", corrected))
			}
		case <-ctx.Done():
			return
		}
	}
}
