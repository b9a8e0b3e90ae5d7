package service

import (
	"context"

	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/models"
)

// TokenService issues and verifies session tokens and manages one-time
// password reset tokens.
type TokenService interface {
	Issue(ctx context.Context, user models.User) (models.Token, error)
	// Verify checks the signature and expiry of tokenString and resolves the
	// principal. It fails when the user is gone or changed the password
	// after the token was issued.
	Verify(ctx context.Context, tokenString string) (models.User, error)

	// CreateResetToken persists the digest of a fresh reset token for user
	// and returns the plaintext.
	CreateResetToken(ctx context.Context, user models.User) (string, error)
	// ClearResetToken drops a pending reset token of the user.
	ClearResetToken(ctx context.Context, userID int64) error
	// ConsumeResetToken exchanges a plaintext for its user exactly once.
	ConsumeResetToken(ctx context.Context, plaintext string) (models.User, error)
}

type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, plaintext string, req models.ResetPasswordRequest) (models.AuthResult, error)
	UpdatePassword(ctx context.Context, user models.User, req models.UpdatePasswordRequest) (models.AuthResult, error)
}

type UserService interface {
	Get(ctx context.Context, id int64) (models.User, error)
	List(ctx context.Context, q query.Query) ([]models.User, error)
	UpdateMe(ctx context.Context, id int64, req models.UpdateMeRequest) (models.User, error)
	DeleteMe(ctx context.Context, id int64) error

	Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	Delete(ctx context.Context, id int64) error
}

type TourService interface {
	// List hides secret tours.
	List(ctx context.Context, q query.Query) ([]models.Tour, error)
	// Get returns a public tour with guides and reviews.
	Get(ctx context.Context, id int64) (models.Tour, error)
	GetBySlug(ctx context.Context, slug string) (models.Tour, error)
	Create(ctx context.Context, in models.TourInput) (models.Tour, error)
	Update(ctx context.Context, id int64, in models.TourInput) (models.Tour, error)
	Delete(ctx context.Context, id int64) error

	Stats(ctx context.Context) ([]models.TourStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error)
	Within(ctx context.Context, distance, lat, lng float64, unit models.DistanceUnit) ([]models.Tour, error)
	Distances(ctx context.Context, lat, lng float64, unit models.DistanceUnit) ([]models.TourDistance, error)

	// BookedBy lists the tours the user has bookings for.
	BookedBy(ctx context.Context, userID int64) ([]models.Tour, error)
}

// ReviewService writes reviews and keeps tour ratings in step with them.
// Only the author or an admin may change or delete a review.
type ReviewService interface {
	List(ctx context.Context, q query.Query) ([]models.Review, error)
	Get(ctx context.Context, id int64) (models.Review, error)
	Create(ctx context.Context, author models.User, in models.ReviewInput) (models.Review, error)
	Update(ctx context.Context, principal models.User, id int64, in models.ReviewInput) (models.Review, error)
	Delete(ctx context.Context, principal models.User, id int64) error
}

// RatingAggregator derives a tour's rating fields from its reviews.
type RatingAggregator interface {
	Recompute(ctx context.Context, tourID int64) (models.RatingStats, error)
	RecomputeAll(ctx context.Context) error
}

type BookingService interface {
	// CreateCheckoutIntent opens a hosted checkout session for user buying
	// the tour.
	CreateCheckoutIntent(ctx context.Context, tourID int64, user models.User) (models.CheckoutSession, error)
	// RecordBooking stores a paid booking after the checkout redirect.
	RecordBooking(ctx context.Context, tourID, userID int64, price float64) (models.Booking, error)

	List(ctx context.Context, q query.Query) ([]models.Booking, error)
	Get(ctx context.Context, id int64) (models.Booking, error)
	Create(ctx context.Context, in models.BookingInput) (models.Booking, error)
	Update(ctx context.Context, id int64, in models.BookingInput) (models.Booking, error)
	Delete(ctx context.Context, id int64) error
}
