// Package worker runs background maintenance against the record store.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stwalsh4118/leadrank/internal/logger"
	"github.com/stwalsh4118/leadrank/internal/metrics"
	"github.com/stwalsh4118/leadrank/internal/models"
	"github.com/stwalsh4118/leadrank/internal/repository"
	"github.com/stwalsh4118/leadrank/internal/scoring"
)

const (
	// DefaultInterval is the pause between refresh passes.
	DefaultInterval = time.Hour
	// DefaultBatchSize is the page size used when walking properties.
	DefaultBatchSize = 200
	// UrgentLeadDays is the auction horizon, in days, at which open leads are
	// forced to high priority.
	UrgentLeadDays = 2
)

// RefreshStats summarises one pass.
type RefreshStats struct {
	Scanned   int
	Updated   int
	Escalated int64
	Elapsed   time.Duration
}

// PriorityRefresher periodically recomputes property priorities and writes
// back the ones that changed. Days-until-auction drifts as time passes, so a
// stored priority goes stale without any write to the property itself.
type PriorityRefresher struct {
	repo      repository.PropertyRepository
	log       *logger.Logger
	interval  time.Duration
	batchSize int
}

// NewPriorityRefresher creates a refresher. Non-positive interval or batch
// size fall back to the defaults.
func NewPriorityRefresher(repo repository.PropertyRepository, log *logger.Logger, interval time.Duration, batchSize int) *PriorityRefresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PriorityRefresher{
		repo:      repo,
		log:       log.WithComponent("priority_refresher"),
		interval:  interval,
		batchSize: batchSize,
	}
}

// Start runs one pass immediately, then one per interval until ctx is done.
// Pass failures are logged; they never stop the loop.
func (w *PriorityRefresher) Start(ctx context.Context) {
	w.log.Info("Priority refresher started", logger.Fields{
		"interval":   w.interval.String(),
		"batch_size": w.batchSize,
	})

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Priority refresher stopped", nil)
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *PriorityRefresher) tick(ctx context.Context) {
	stats, err := w.RunOnce(ctx)
	if errors.Is(err, context.Canceled) {
		return
	}
	metrics.RecordRefresh(err)
	if err != nil {
		w.log.Error("Priority refresh failed", err, logger.Fields{
			"scanned": stats.Scanned,
			"updated": stats.Updated,
		})
		return
	}
	if stats.Updated > 0 || stats.Escalated > 0 {
		w.log.Info("Priorities refreshed", logger.Fields{
			"scanned":    stats.Scanned,
			"updated":    stats.Updated,
			"escalated":  stats.Escalated,
			"elapsed_ms": stats.Elapsed.Milliseconds(),
		})
	}
}

// RunOnce walks every distressed property in id order, rewrites stale
// priorities and escalates leads whose auction is imminent. It stops at the
// first repository error and returns the stats gathered so far.
func (w *PriorityRefresher) RunOnce(ctx context.Context) (RefreshStats, error) {
	start := time.Now()
	var stats RefreshStats
	err := w.refresh(ctx, &stats)
	stats.Elapsed = time.Since(start)
	return stats, err
}

func (w *PriorityRefresher) refresh(ctx context.Context, stats *RefreshStats) error {
	var afterID int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, err := w.repo.ListByStatus(ctx, models.DistressedStatuses, afterID, w.batchSize)
		if err != nil {
			return fmt.Errorf("list page after %d: %w", afterID, err)
		}

		for _, p := range page {
			stats.Scanned++
			priority := scoring.Priority(p)
			if priority == p.Priority {
				continue
			}
			changed, err := w.repo.UpdatePriority(ctx, p.ID, priority)
			if err != nil {
				return err
			}
			if changed {
				stats.Updated++
				metrics.RecordPriorityUpdate(string(priority))
			}
		}

		if len(page) < w.batchSize {
			break
		}
		afterID = page[len(page)-1].ID
	}

	escalated, err := w.repo.EscalateUrgentLeads(ctx, UrgentLeadDays)
	if err != nil {
		return err
	}
	stats.Escalated = escalated
	return nil
}
