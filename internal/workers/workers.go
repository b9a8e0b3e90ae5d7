package workers

import (
	"context"

	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/logger"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the workers enabled by cfg. A zero interval disables
// the ratings reconciler.
func NewWorkers(cfg config.Workers, ratings RatingsRecomputer, logger *logger.Logger) *Workers {
	w := &Workers{}
	if cfg.RatingsReconcileInterval > 0 {
		w.workers = append(w.workers, NewRatingsReconciler(ratings, cfg.RatingsReconcileInterval, logger))
	}
	return w
}

func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
