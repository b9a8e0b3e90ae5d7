// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"math"

	"github.com/gosimple/slug"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/internal/cache"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/internal/store"
	"github.com/nitesh01487/natours/internal/validators"
	"github.com/nitesh01487/natours/models"
)

const (
	// statsMinRating is the lower rating bound of the tour stats report.
	statsMinRating = 4.5

	minPlanYear = 1970
	maxPlanYear = 9999

	tourEntity = "tour"
)

// secretTourColumn hides tours from public listings.
const secretTourColumn = "secret_tour"

type tourService struct {
	tourRepository    store.TourRepository
	userRepository    store.UserRepository
	reviewRepository  store.ReviewRepository
	bookingRepository store.BookingRepository
	statsCache        cache.StatsCache
	validator         validators.Validator
	logger            *logger.Logger
}

func NewTourService(tours store.TourRepository, users store.UserRepository, reviews store.ReviewRepository,
	bookings store.BookingRepository, statsCache cache.StatsCache, logger *logger.Logger) TourService {
	return &tourService{
		tourRepository:    tours,
		userRepository:    users,
		reviewRepository:  reviews,
		bookingRepository: bookings,
		statsCache:        statsCache,
		validator:         validators.NewTourValidator(),
		logger:            logger,
	}
}

func (s *tourService) List(ctx context.Context, q query.Query) ([]models.Tour, error) {
	q = q.WithFilter(query.Eq(secretTourColumn, false))

	if err := checkPage(ctx, q, s.tourRepository.Count); err != nil {
		return nil, err
	}

	tours, err := s.tourRepository.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if err = s.withGuides(ctx, tours); err != nil {
		return nil, err
	}
	return tours, nil
}

func (s *tourService) Get(ctx context.Context, id int64) (models.Tour, error) {
	tour, err := s.tourRepository.FindByID(ctx, id)
	if err != nil {
		return models.Tour{}, err
	}
	return s.details(ctx, tour)
}

func (s *tourService) GetBySlug(ctx context.Context, tourSlug string) (models.Tour, error) {
	tour, err := s.tourRepository.FindBySlug(ctx, tourSlug)
	if err != nil {
		return models.Tour{}, err
	}
	return s.details(ctx, tour)
}

// details hides secret tours and populates guides and reviews.
func (s *tourService) details(ctx context.Context, tour models.Tour) (models.Tour, error) {
	if tour.SecretTour {
		return models.Tour{}, apperr.NotFound(tourEntity)
	}

	tours := []models.Tour{tour}
	if err := s.withGuides(ctx, tours); err != nil {
		return models.Tour{}, err
	}
	tour = tours[0]

	q, err := query.Parse(store.ReviewSchema, nil)
	if err != nil {
		return models.Tour{}, err
	}
	reviews, err := s.reviewRepository.List(ctx, q.WithFilter(query.Eq("r.tour_id", tour.ID)))
	if err != nil {
		return models.Tour{}, fmt.Errorf("error loading reviews: %w", err)
	}
	tour.Reviews = reviews

	return tour, nil
}

// withGuides resolves GuideIDs of every tour with one lookup.
func (s *tourService) withGuides(ctx context.Context, tours []models.Tour) error {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, t := range tours {
		for _, id := range t.GuideIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	guides, err := s.userRepository.FindActiveByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("error loading guides: %w", err)
	}
	byID := make(map[int64]models.User, len(guides))
	for _, g := range guides {
		byID[g.ID] = g
	}

	for i := range tours {
		tours[i].Guides = make([]models.User, 0, len(tours[i].GuideIDs))
		for _, id := range tours[i].GuideIDs {
			if g, ok := byID[id]; ok {
				tours[i].Guides = append(tours[i].Guides, g)
			}
		}
	}
	return nil
}

func (s *tourService) Create(ctx context.Context, in models.TourInput) (models.Tour, error) {
	log := logger.FromContext(ctx)

	var tour models.Tour
	in.Apply(&tour)
	tour.Slug = slug.Make(tour.Name)

	if err := s.prepare(ctx, &tour); err != nil {
		return models.Tour{}, err
	}

	created, err := s.tourRepository.Create(ctx, tour)
	if err != nil {
		log.Err(err).Str("func", "*tourService.Create").Msg("error creating tour")
		return models.Tour{}, err
	}

	s.invalidate(ctx)
	return s.populated(ctx, created)
}

// Update applies in to the stored tour and validates the result as a whole,
// so cross-field rules see the merged values.
func (s *tourService) Update(ctx context.Context, id int64, in models.TourInput) (models.Tour, error) {
	log := logger.FromContext(ctx)

	tour, err := s.tourRepository.FindByID(ctx, id)
	if err != nil {
		return models.Tour{}, err
	}

	in.Apply(&tour)
	if in.Name != nil {
		tour.Slug = slug.Make(tour.Name)
	}

	if err = s.prepare(ctx, &tour); err != nil {
		return models.Tour{}, err
	}

	updated, err := s.tourRepository.Update(ctx, tour)
	if err != nil {
		log.Err(err).Str("func", "*tourService.Update").Int64("tour_id", id).Msg("error updating tour")
		return models.Tour{}, err
	}

	s.invalidate(ctx)
	return s.populated(ctx, updated)
}

func (s *tourService) prepare(ctx context.Context, tour *models.Tour) error {
	if err := s.validator.Validate(ctx, tour); err != nil {
		return err
	}

	if tour.StartLocation != nil && tour.StartLocation.Type == "" {
		tour.StartLocation.Type = "Point"
	}
	for i := range tour.Locations {
		if tour.Locations[i].Type == "" {
			tour.Locations[i].Type = "Point"
		}
	}

	if len(tour.GuideIDs) == 0 {
		return nil
	}
	guides, err := s.userRepository.FindActiveByIDs(ctx, tour.GuideIDs)
	if err != nil {
		return fmt.Errorf("error loading guides: %w", err)
	}
	if len(guides) != len(uniqueIDs(tour.GuideIDs)) {
		return ErrUnknownGuide
	}
	return nil
}

func (s *tourService) populated(ctx context.Context, tour models.Tour) (models.Tour, error) {
	tours := []models.Tour{tour}
	if err := s.withGuides(ctx, tours); err != nil {
		return models.Tour{}, err
	}
	return tours[0], nil
}

func (s *tourService) Delete(ctx context.Context, id int64) error {
	if err := s.tourRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *tourService) invalidate(ctx context.Context) {
	if err := s.statsCache.Invalidate(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*tourService.invalidate").Msg("error invalidating stats cache")
	}
}

// Stats groups tours rated at least 4.5 by difficulty. Results are cached
// until the next tour or rating write.
func (s *tourService) Stats(ctx context.Context) ([]models.TourStats, error) {
	key := cache.TourStatsKey(statsMinRating)

	var stats []models.TourStats
	if s.cached(ctx, key, &stats) {
		return stats, nil
	}

	stats, err := s.tourRepository.Stats(ctx, statsMinRating)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, stats)
	return stats, nil
}

func (s *tourService) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error) {
	if year < minPlanYear || year > maxPlanYear {
		return nil, ErrInvalidYear
	}

	key := cache.MonthlyPlanKey(year)

	var plan []models.MonthlyPlan
	if s.cached(ctx, key, &plan) {
		return plan, nil
	}

	plan, err := s.tourRepository.MonthlyPlan(ctx, year)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, plan)
	return plan, nil
}

// cached reports a cache hit. Cache failures count as a miss.
func (s *tourService) cached(ctx context.Context, key string, dst any) bool {
	hit, err := s.statsCache.Get(ctx, key, dst)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*tourService.cached").Str("key", key).Msg("error reading stats cache")
		return false
	}
	return hit
}

func (s *tourService) store(ctx context.Context, key string, v any) {
	if err := s.statsCache.Set(ctx, key, v); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*tourService.store").Str("key", key).Msg("error writing stats cache")
	}
}

// Within lists tours starting within distance (in unit) of the point.
func (s *tourService) Within(ctx context.Context, distance, lat, lng float64, unit models.DistanceUnit) ([]models.Tour, error) {
	if err := validateGeo(lat, lng, unit); err != nil {
		return nil, err
	}
	if distance < 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return nil, apperr.Validation("distance", "Distance must be a positive number")
	}

	tours, err := s.tourRepository.Within(ctx, lat, lng, distance/unit.EarthRadius())
	if err != nil {
		return nil, err
	}
	if err = s.withGuides(ctx, tours); err != nil {
		return nil, err
	}
	return tours, nil
}

func (s *tourService) Distances(ctx context.Context, lat, lng float64, unit models.DistanceUnit) ([]models.TourDistance, error) {
	if err := validateGeo(lat, lng, unit); err != nil {
		return nil, err
	}
	return s.tourRepository.Distances(ctx, lat, lng, unit.FromMeters())
}

func (s *tourService) BookedBy(ctx context.Context, userID int64) ([]models.Tour, error) {
	ids, err := s.bookingRepository.ListTourIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading bookings: %w", err)
	}
	return s.tourRepository.FindByIDs(ctx, ids)
}

func validateGeo(lat, lng float64, unit models.DistanceUnit) error {
	if unit != models.UnitMiles && unit != models.UnitKilometers {
		return ErrInvalidDistanceUnit
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

func uniqueIDs(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
