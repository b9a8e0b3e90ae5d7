package service

import (
	"fmt"

	"github.com/nitesh01487/natours/internal/adapter"
	"github.com/nitesh01487/natours/internal/cache"
	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/crypto"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/store"
)

// Dependencies are the outbound clients the services talk to.
type Dependencies struct {
	Payment    adapter.PaymentGateway
	Mailer     adapter.Mailer
	StatsCache cache.StatsCache
}

type Services struct {
	TokenService     TokenService
	AuthService      AuthService
	UserService      UserService
	TourService      TourService
	ReviewService    ReviewService
	RatingAggregator RatingAggregator
	BookingService   BookingService
}

func NewServices(repos *store.Repositories, deps Dependencies, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	hasher, err := crypto.NewPasswordHasher(cfg.App.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error creating password hasher: %w", err)
	}

	statsCache := deps.StatsCache
	if statsCache == nil {
		statsCache = cache.Noop{}
	}

	tokens := NewTokenService(repos.UserRepository, crypto.NewResetTokenGenerator(cfg.App.ResetTokenTTL), cfg.App, logger)
	ratings := NewRatingAggregator(repos.ReviewRepository, repos.TourRepository, statsCache, logger)

	return &Services{
		TokenService:     tokens,
		AuthService:      NewAuthService(repos.UserRepository, tokens, hasher, deps.Mailer, cfg.App, logger),
		UserService:      NewUserService(repos.UserRepository, logger),
		TourService:      NewTourService(repos.TourRepository, repos.UserRepository, repos.ReviewRepository, repos.BookingRepository, statsCache, logger),
		ReviewService:    NewReviewService(repos.ReviewRepository, ratings, logger),
		RatingAggregator: ratings,
		BookingService:   NewBookingService(repos.BookingRepository, repos.TourRepository, deps.Payment, cfg.App, cfg.Adapter.Payment, logger),
	}, nil
}
