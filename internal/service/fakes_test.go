// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/models"
)

// ─────────────────────────────────────────────
// Fake: store.UserRepository
// ─────────────────────────────────────────────

type fakeUserRepository struct {
	createFn            func(ctx context.Context, user models.User) (models.User, error)
	findActiveByIDFn    func(ctx context.Context, id int64) (models.User, error)
	findActiveByEmailFn func(ctx context.Context, email string) (models.User, error)
	findActiveByIDsFn   func(ctx context.Context, ids []int64) ([]models.User, error)
	listFn              func(ctx context.Context, q query.Query) ([]models.User, error)
	countFn             func(ctx context.Context, q query.Query) (int, error)
	updateFn            func(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	updatePasswordFn    func(ctx context.Context, id int64, digest string, changedAt time.Time) (models.User, error)
	setResetTokenFn     func(ctx context.Context, id int64, digest string, expiresAt *time.Time) error
	consumeResetTokenFn func(ctx context.Context, digest string, now time.Time) (models.User, error)
	deleteFn            func(ctx context.Context, id int64) error
}

func (f *fakeUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	user.ID = 1
	return user, nil
}

func (f *fakeUserRepository) FindActiveByID(ctx context.Context, id int64) (models.User, error) {
	if f.findActiveByIDFn != nil {
		return f.findActiveByIDFn(ctx, id)
	}
	return models.User{ID: id, Active: true}, nil
}

func (f *fakeUserRepository) FindActiveByEmail(ctx context.Context, email string) (models.User, error) {
	if f.findActiveByEmailFn != nil {
		return f.findActiveByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

func (f *fakeUserRepository) FindActiveByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	if f.findActiveByIDsFn != nil {
		return f.findActiveByIDsFn(ctx, ids)
	}
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, models.User{ID: id, Role: models.RoleGuide, Active: true})
	}
	return users, nil
}

func (f *fakeUserRepository) List(ctx context.Context, q query.Query) ([]models.User, error) {
	if f.listFn != nil {
		return f.listFn(ctx, q)
	}
	return nil, nil
}

func (f *fakeUserRepository) Count(ctx context.Context, q query.Query) (int, error) {
	if f.countFn != nil {
		return f.countFn(ctx, q)
	}
	return 0, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, update)
	}
	return models.User{ID: id}, nil
}

func (f *fakeUserRepository) UpdatePassword(ctx context.Context, id int64, digest string, changedAt time.Time) (models.User, error) {
	if f.updatePasswordFn != nil {
		return f.updatePasswordFn(ctx, id, digest, changedAt)
	}
	return models.User{ID: id, Password: digest, PasswordChangedAt: &changedAt}, nil
}

func (f *fakeUserRepository) SetResetToken(ctx context.Context, id int64, digest string, expiresAt *time.Time) error {
	if f.setResetTokenFn != nil {
		return f.setResetTokenFn(ctx, id, digest, expiresAt)
	}
	return nil
}

func (f *fakeUserRepository) ConsumeResetToken(ctx context.Context, digest string, now time.Time) (models.User, error) {
	if f.consumeResetTokenFn != nil {
		return f.consumeResetTokenFn(ctx, digest, now)
	}
	return models.User{}, nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Fake: store.TourRepository
// ─────────────────────────────────────────────

type fakeTourRepository struct {
	createFn        func(ctx context.Context, tour models.Tour) (models.Tour, error)
	findByIDFn      func(ctx context.Context, id int64) (models.Tour, error)
	findBySlugFn    func(ctx context.Context, slug string) (models.Tour, error)
	findByIDsFn     func(ctx context.Context, ids []int64) ([]models.Tour, error)
	listFn          func(ctx context.Context, q query.Query) ([]models.Tour, error)
	countFn         func(ctx context.Context, q query.Query) (int, error)
	listIDsFn       func(ctx context.Context) ([]int64, error)
	updateFn        func(ctx context.Context, tour models.Tour) (models.Tour, error)
	updateRatingsFn func(ctx context.Context, stats models.RatingStats) error
	deleteFn        func(ctx context.Context, id int64) error
	statsFn         func(ctx context.Context, minRating float64) ([]models.TourStats, error)
	monthlyPlanFn   func(ctx context.Context, year int) ([]models.MonthlyPlan, error)
	withinFn        func(ctx context.Context, lat, lng, radius float64) ([]models.Tour, error)
	distancesFn     func(ctx context.Context, lat, lng, multiplier float64) ([]models.TourDistance, error)
}

func (f *fakeTourRepository) Create(ctx context.Context, tour models.Tour) (models.Tour, error) {
	if f.createFn != nil {
		return f.createFn(ctx, tour)
	}
	tour.ID = 1
	return tour, nil
}

func (f *fakeTourRepository) FindByID(ctx context.Context, id int64) (models.Tour, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return models.Tour{ID: id}, nil
}

func (f *fakeTourRepository) FindBySlug(ctx context.Context, slug string) (models.Tour, error) {
	if f.findBySlugFn != nil {
		return f.findBySlugFn(ctx, slug)
	}
	return models.Tour{Slug: slug}, nil
}

func (f *fakeTourRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Tour, error) {
	if f.findByIDsFn != nil {
		return f.findByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (f *fakeTourRepository) List(ctx context.Context, q query.Query) ([]models.Tour, error) {
	if f.listFn != nil {
		return f.listFn(ctx, q)
	}
	return nil, nil
}

func (f *fakeTourRepository) Count(ctx context.Context, q query.Query) (int, error) {
	if f.countFn != nil {
		return f.countFn(ctx, q)
	}
	return 0, nil
}

func (f *fakeTourRepository) ListIDs(ctx context.Context) ([]int64, error) {
	if f.listIDsFn != nil {
		return f.listIDsFn(ctx)
	}
	return nil, nil
}

func (f *fakeTourRepository) Update(ctx context.Context, tour models.Tour) (models.Tour, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, tour)
	}
	return tour, nil
}

func (f *fakeTourRepository) UpdateRatings(ctx context.Context, stats models.RatingStats) error {
	if f.updateRatingsFn != nil {
		return f.updateRatingsFn(ctx, stats)
	}
	return nil
}

func (f *fakeTourRepository) Delete(ctx context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeTourRepository) Stats(ctx context.Context, minRating float64) ([]models.TourStats, error) {
	if f.statsFn != nil {
		return f.statsFn(ctx, minRating)
	}
	return nil, nil
}

func (f *fakeTourRepository) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error) {
	if f.monthlyPlanFn != nil {
		return f.monthlyPlanFn(ctx, year)
	}
	return nil, nil
}

func (f *fakeTourRepository) Within(ctx context.Context, lat, lng, radius float64) ([]models.Tour, error) {
	if f.withinFn != nil {
		return f.withinFn(ctx, lat, lng, radius)
	}
	return nil, nil
}

func (f *fakeTourRepository) Distances(ctx context.Context, lat, lng, multiplier float64) ([]models.TourDistance, error) {
	if f.distancesFn != nil {
		return f.distancesFn(ctx, lat, lng, multiplier)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Fake: store.ReviewRepository
// ─────────────────────────────────────────────

type fakeReviewRepository struct {
	createFn      func(ctx context.Context, review models.Review) (models.Review, error)
	findByIDFn    func(ctx context.Context, id int64) (models.Review, error)
	listFn        func(ctx context.Context, q query.Query) ([]models.Review, error)
	countFn       func(ctx context.Context, q query.Query) (int, error)
	updateFn      func(ctx context.Context, id int64, in models.ReviewInput) (models.Review, error)
	deleteFn      func(ctx context.Context, id int64) error
	ratingStatsFn func(ctx context.Context, tourID int64) (models.RatingStats, error)
}

func (f *fakeReviewRepository) Create(ctx context.Context, review models.Review) (models.Review, error) {
	if f.createFn != nil {
		return f.createFn(ctx, review)
	}
	review.ID = 1
	return review, nil
}

func (f *fakeReviewRepository) FindByID(ctx context.Context, id int64) (models.Review, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return models.Review{ID: id}, nil
}

func (f *fakeReviewRepository) List(ctx context.Context, q query.Query) ([]models.Review, error) {
	if f.listFn != nil {
		return f.listFn(ctx, q)
	}
	return nil, nil
}

func (f *fakeReviewRepository) Count(ctx context.Context, q query.Query) (int, error) {
	if f.countFn != nil {
		return f.countFn(ctx, q)
	}
	return 0, nil
}

func (f *fakeReviewRepository) Update(ctx context.Context, id int64, in models.ReviewInput) (models.Review, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, in)
	}
	return models.Review{ID: id}, nil
}

func (f *fakeReviewRepository) Delete(ctx context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeReviewRepository) RatingStats(ctx context.Context, tourID int64) (models.RatingStats, error) {
	if f.ratingStatsFn != nil {
		return f.ratingStatsFn(ctx, tourID)
	}
	return models.RatingStats{TourID: tourID}, nil
}

// ─────────────────────────────────────────────
// Fake: store.BookingRepository
// ─────────────────────────────────────────────

type fakeBookingRepository struct {
	createFn            func(ctx context.Context, booking models.Booking) (models.Booking, error)
	findByIDFn          func(ctx context.Context, id int64) (models.Booking, error)
	listFn              func(ctx context.Context, q query.Query) ([]models.Booking, error)
	countFn             func(ctx context.Context, q query.Query) (int, error)
	listTourIDsByUserFn func(ctx context.Context, userID int64) ([]int64, error)
	updateFn            func(ctx context.Context, id int64, in models.BookingInput) (models.Booking, error)
	deleteFn            func(ctx context.Context, id int64) error
}

func (f *fakeBookingRepository) Create(ctx context.Context, booking models.Booking) (models.Booking, error) {
	if f.createFn != nil {
		return f.createFn(ctx, booking)
	}
	booking.ID = 1
	return booking, nil
}

func (f *fakeBookingRepository) FindByID(ctx context.Context, id int64) (models.Booking, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return models.Booking{ID: id}, nil
}

func (f *fakeBookingRepository) List(ctx context.Context, q query.Query) ([]models.Booking, error) {
	if f.listFn != nil {
		return f.listFn(ctx, q)
	}
	return nil, nil
}

func (f *fakeBookingRepository) Count(ctx context.Context, q query.Query) (int, error) {
	if f.countFn != nil {
		return f.countFn(ctx, q)
	}
	return 0, nil
}

func (f *fakeBookingRepository) ListTourIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	if f.listTourIDsByUserFn != nil {
		return f.listTourIDsByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeBookingRepository) Update(ctx context.Context, id int64, in models.BookingInput) (models.Booking, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, in)
	}
	return models.Booking{ID: id}, nil
}

func (f *fakeBookingRepository) Delete(ctx context.Context, id int64) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

// ─────────────────────────────────────────────
// Fake: RatingAggregator
// ─────────────────────────────────────────────

type fakeRatings struct {
	recomputed []int64
	err        error
}

func (f *fakeRatings) Recompute(_ context.Context, tourID int64) (models.RatingStats, error) {
	f.recomputed = append(f.recomputed, tourID)
	return models.RatingStats{TourID: tourID}, f.err
}

func (f *fakeRatings) RecomputeAll(context.Context) error {
	return f.err
}

func ptr[T any](v T) *T {
	return &v
}
