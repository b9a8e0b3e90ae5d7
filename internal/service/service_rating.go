package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/internal/cache"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/store"
	"github.com/nitesh01487/natours/models"
)

// tourLocks hands out one mutex per tour. Entries are dropped once no
// goroutine holds or waits for them.
type tourLocks struct {
	mu    sync.Mutex
	locks map[int64]*tourLock
}

type tourLock struct {
	sync.Mutex
	refs int
}

func newTourLocks() *tourLocks {
	return &tourLocks{locks: make(map[int64]*tourLock)}
}

// lock blocks until the caller owns tourID and returns the unlock function.
func (l *tourLocks) lock(tourID int64) func() {
	l.mu.Lock()
	lk, ok := l.locks[tourID]
	if !ok {
		lk = &tourLock{}
		l.locks[tourID] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.Lock()
	return func() {
		lk.Unlock()

		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, tourID)
		}
		l.mu.Unlock()
	}
}

// ratingAggregator recomputes the rating fields of a tour from scratch. Runs
// for the same tour are serialized, so the last one always sees every
// committed review write.
type ratingAggregator struct {
	reviewRepository store.ReviewRepository
	tourRepository   store.TourRepository
	statsCache       cache.StatsCache
	locks            *tourLocks
	logger           *logger.Logger
}

func NewRatingAggregator(reviewRepository store.ReviewRepository, tourRepository store.TourRepository,
	statsCache cache.StatsCache, logger *logger.Logger) RatingAggregator {
	return &ratingAggregator{
		reviewRepository: reviewRepository,
		tourRepository:   tourRepository,
		statsCache:       statsCache,
		locks:            newTourLocks(),
		logger:           logger,
	}
}

// Recompute stores count and mean rating of the tour's reviews on the tour.
// Without reviews the defaults (0, 4.5) are stored.
func (a *ratingAggregator) Recompute(ctx context.Context, tourID int64) (models.RatingStats, error) {
	log := logger.FromContext(ctx)

	unlock := a.locks.lock(tourID)
	defer unlock()

	stats, err := a.reviewRepository.RatingStats(ctx, tourID)
	if err != nil {
		log.Err(err).Str("func", "*ratingAggregator.Recompute").Int64("tour_id", tourID).Msg("error aggregating reviews")
		return models.RatingStats{}, fmt.Errorf("error aggregating reviews: %w", err)
	}

	stats.TourID = tourID
	if stats.Quantity == 0 {
		stats.Quantity = models.DefaultRatingsQuantity
		stats.Average = models.DefaultRatingsAverage
	} else {
		stats.Average = models.RoundRating(stats.Average)
	}

	if err = a.tourRepository.UpdateRatings(ctx, stats); err != nil {
		log.Err(err).Str("func", "*ratingAggregator.Recompute").Int64("tour_id", tourID).Msg("error storing ratings")
		return models.RatingStats{}, fmt.Errorf("error storing ratings: %w", err)
	}

	if err = a.statsCache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Str("func", "*ratingAggregator.Recompute").Msg("error invalidating stats cache")
	}

	log.Debug().Str("func", "*ratingAggregator.Recompute").
		Int64("tour_id", tourID).
		Int("quantity", stats.Quantity).
		Float64("average", stats.Average).
		Msg("ratings recomputed")
	return stats, nil
}

// RecomputeAll recomputes every tour. Tours deleted meanwhile are skipped;
// other failures are collected and do not stop the run.
func (a *ratingAggregator) RecomputeAll(ctx context.Context) error {
	ids, err := a.tourRepository.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("error listing tours: %w", err)
	}

	var errs []error
	for _, id := range ids {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err = a.Recompute(ctx, id); err != nil && !errors.Is(err, apperr.ErrNotFound) {
			errs = append(errs, fmt.Errorf("tour %d: %w", id, err))
		}
	}

	return errors.Join(errs...)
}
