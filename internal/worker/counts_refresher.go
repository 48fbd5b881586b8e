package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// CountsRecomputer republishes derived counts for an unchanged collection.
type CountsRecomputer interface {
	RecomputeCounts() domain.TicketCounts
}

// StartCountsRefresher recomputes counts every interval until ctx is done.
// Overdue buckets depend on the clock, so without it counts only move when
// a ticket is mutated. The returned channel closes when the loop exits.
func StartCountsRefresher(ctx context.Context, store CountsRecomputer, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	if store == nil || interval <= 0 {
		close(done)
		return done
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				counts := store.RecomputeCounts()
				logger.Debug("counts refreshed",
					zap.Int("resolution_due", counts.ResolutionDue),
					zap.Int("response_due", counts.ResponseDue))
			}
		}
	}()
	return done
}
