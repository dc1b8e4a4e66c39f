// Package maintenance runs the periodic housekeeping the managed platform's
// scheduler used to trigger.
package maintenance

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type NotificationStore interface {
	DeleteNotificationsBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// Cleaner prunes old notification records. Failures are logged only; the
// sweep is best effort and the next run retries naturally.
type Cleaner struct {
	store     NotificationStore
	logger    *zap.Logger
	retention time.Duration
}

func NewCleaner(store NotificationStore, logger *zap.Logger, retentionDays int) *Cleaner {
	return &Cleaner{
		store:     store,
		logger:    logger,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// Run sweeps once.
func (c *Cleaner) Run(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-c.retention)
	deleted, err := c.store.DeleteNotificationsBefore(ctx, cutoff)
	if err != nil {
		c.logger.Error("notification cleanup failed", zap.Int("deleted", deleted), zap.Error(err))
		return deleted, err
	}
	c.logger.Info("notification cleanup finished", zap.Int("deleted", deleted))
	return deleted, nil
}

// Schedule sweeps daily until ctx is cancelled.
func (c *Cleaner) Schedule(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = c.Run(ctx)
		}
	}
}
