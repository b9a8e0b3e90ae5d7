package workers

import (
	"context"
	"sync"
	"time"

	"github.com/nitesh01487/natours/internal/logger"
)

// ratingsReconciler periodically recomputes every tour's ratings so that
// drift left by a failed recompute after a review write is healed.
type ratingsReconciler struct {
	ratings  RatingsRecomputer
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRatingsReconciler(ratings RatingsRecomputer, interval time.Duration, logger *logger.Logger) Worker {
	return &ratingsReconciler{
		ratings:  ratings,
		interval: interval,
		logger:   logger,
	}
}

// Start stops a previous run, then recomputes on every tick of the interval.
func (r *ratingsReconciler) Start(ctx context.Context) {
	r.Stop()

	r.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	r.logger.Info().Dur("interval", r.interval).Msg("ratings reconciler started")

	go func() {
		defer r.wg.Done()
		t := time.NewTicker(r.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				r.reconcile(jobCtx)
			}
		}
	}()
}

func (r *ratingsReconciler) reconcile(ctx context.Context) {
	start := time.Now()
	if err := r.ratings.RecomputeAll(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		r.logger.Err(err).Msg("ratings reconcile failed")
		return
	}
	r.logger.Debug().Dur("duration", time.Since(start)).Msg("ratings reconciled")
}

func (r *ratingsReconciler) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
}
