package cleanup

import (
	"context"
	"log"
	"time"
)

type HistoryPurger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Worker deletes game history older than RetentionDays. Totals are not touched.
type Worker struct {
	Purger        HistoryPurger
	RetentionDays int
	Interval      time.Duration
	now           func() time.Time
}

func NewWorker(p HistoryPurger, retentionDays int) *Worker {
	return &Worker{
		Purger:        p,
		RetentionDays: retentionDays,
		Interval:      1 * time.Hour,
		now:           time.Now,
	}
}

// Start runs one cleanup right away and then every Interval until ctx is done.
// A worker without a positive retention does nothing.
func (w *Worker) Start(ctx context.Context) {
	if w.RetentionDays <= 0 {
		log.Println("[CLEANUP] History retention disabled")
		return
	}

	go func() {
		w.runCleanup(ctx)

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("[CLEANUP] Background worker stopped")
				return
			case <-ticker.C:
				w.runCleanup(ctx)
			}
		}
	}()
	log.Printf("[CLEANUP] Background worker started (keeping %d days)", w.RetentionDays)
}

// runCleanup executes the actual cleanup logic
func (w *Worker) runCleanup(ctx context.Context) int64 {
	cutoff := w.now().AddDate(0, 0, -w.RetentionDays)

	deletedCount, err := w.Purger.PurgeBefore(ctx, cutoff)
	if err != nil {
		log.Printf("[CLEANUP] Error cleaning up game history: %v", err)
		return 0
	}
	if deletedCount > 0 {
		log.Printf("[CLEANUP] Removed %d games finished before %s", deletedCount, cutoff.Format(time.RFC3339))
	}
	return deletedCount
}
