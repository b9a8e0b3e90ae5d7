package store

import (
	"context"
	"time"

	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/models"
)

// ErrorClassificator decides whether a database error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository persists user accounts. Lookups named FindActive skip
// soft-deleted accounts.
type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindActiveByID(ctx context.Context, id int64) (models.User, error)
	FindActiveByEmail(ctx context.Context, email string) (models.User, error)
	FindActiveByIDs(ctx context.Context, ids []int64) ([]models.User, error)
	List(ctx context.Context, q query.Query) ([]models.User, error)
	Count(ctx context.Context, q query.Query) (int, error)
	Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	UpdatePassword(ctx context.Context, id int64, digest string, changedAt time.Time) (models.User, error)
	SetResetToken(ctx context.Context, id int64, digest string, expiresAt *time.Time) error
	ConsumeResetToken(ctx context.Context, digest string, now time.Time) (models.User, error)
	Delete(ctx context.Context, id int64) error
}

// TourRepository persists tours and answers the aggregate reports over them.
type TourRepository interface {
	Create(ctx context.Context, tour models.Tour) (models.Tour, error)
	FindByID(ctx context.Context, id int64) (models.Tour, error)
	FindBySlug(ctx context.Context, slug string) (models.Tour, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.Tour, error)
	List(ctx context.Context, q query.Query) ([]models.Tour, error)
	Count(ctx context.Context, q query.Query) (int, error)
	ListIDs(ctx context.Context) ([]int64, error)
	Update(ctx context.Context, tour models.Tour) (models.Tour, error)
	UpdateRatings(ctx context.Context, stats models.RatingStats) error
	Delete(ctx context.Context, id int64) error

	// Stats groups public tours rated at least minRating by difficulty.
	Stats(ctx context.Context, minRating float64) ([]models.TourStats, error)
	// MonthlyPlan counts public tour starts per month of year.
	MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error)
	// Within lists public tours starting within radius radians of the point.
	Within(ctx context.Context, lat, lng, radius float64) ([]models.Tour, error)
	// Distances lists public tours by distance from the point, nearest first.
	// multiplier converts metres to the requested unit.
	Distances(ctx context.Context, lat, lng, multiplier float64) ([]models.TourDistance, error)
}

// ReviewRepository persists reviews. Reads embed the author's summary.
type ReviewRepository interface {
	Create(ctx context.Context, review models.Review) (models.Review, error)
	FindByID(ctx context.Context, id int64) (models.Review, error)
	List(ctx context.Context, q query.Query) ([]models.Review, error)
	Count(ctx context.Context, q query.Query) (int, error)
	Update(ctx context.Context, id int64, in models.ReviewInput) (models.Review, error)
	Delete(ctx context.Context, id int64) error
	RatingStats(ctx context.Context, tourID int64) (models.RatingStats, error)
}

// BookingRepository persists bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) (models.Booking, error)
	FindByID(ctx context.Context, id int64) (models.Booking, error)
	List(ctx context.Context, q query.Query) ([]models.Booking, error)
	Count(ctx context.Context, q query.Query) (int, error)
	ListTourIDsByUser(ctx context.Context, userID int64) ([]int64, error)
	Update(ctx context.Context, id int64, in models.BookingInput) (models.Booking, error)
	Delete(ctx context.Context, id int64) error
}
