package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nitesh01487/natours/internal/adapter"
	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/internal/store"
	"github.com/nitesh01487/natours/internal/validators"
	"github.com/nitesh01487/natours/models"
)

type bookingService struct {
	bookingRepository store.BookingRepository
	tourRepository    store.TourRepository
	gateway           adapter.PaymentGateway
	validator         validators.Validator

	publicURL string
	currency  string

	logger *logger.Logger
}

func NewBookingService(bookings store.BookingRepository, tours store.TourRepository, gateway adapter.PaymentGateway,
	appCfg config.App, paymentCfg config.Payment, logger *logger.Logger) BookingService {
	return &bookingService{
		bookingRepository: bookings,
		tourRepository:    tours,
		gateway:           gateway,
		validator:         validators.NewBookingValidator(),
		publicURL:         strings.TrimRight(appCfg.PublicURL, "/"),
		currency:          paymentCfg.Currency,
		logger:            logger,
	}
}

// CreateCheckoutIntent opens a checkout session selling one seat of the tour
// to user. The success URL carries tour, user and price back so the booking
// can be recorded when the buyer returns.
func (s *bookingService) CreateCheckoutIntent(ctx context.Context, tourID int64, user models.User) (models.CheckoutSession, error) {
	log := logger.FromContext(ctx)

	tour, err := s.tourRepository.FindByID(ctx, tourID)
	if err != nil {
		return models.CheckoutSession{}, err
	}
	if tour.SecretTour {
		return models.CheckoutSession{}, apperr.NotFound(tourEntity)
	}

	success := url.Values{}
	success.Set("tour", strconv.FormatInt(tour.ID, 10))
	success.Set("user", strconv.FormatInt(user.ID, 10))
	success.Set("price", strconv.FormatFloat(tour.Price, 'f', -1, 64))

	session, err := s.gateway.CreateCheckoutSession(ctx, models.CheckoutSessionRequest{
		SuccessURL:        s.publicURL + "/?" + success.Encode(),
		CancelURL:         s.publicURL + "/tour/" + tour.Slug,
		CustomerEmail:     user.Email,
		ClientReferenceID: strconv.FormatInt(tour.ID, 10),
		LineItem: models.CheckoutLineItem{
			Name:        tour.Name + " Tour",
			Description: tour.Summary,
			Images:      []string{s.publicURL + "/img/tours/" + tour.ImageCover},
			Amount:      int64(math.Round(tour.Price * 100)),
			Currency:    s.currency,
			Quantity:    1,
		},
	})
	if err != nil {
		if errors.Is(err, adapter.ErrPaymentsDisabled) {
			return models.CheckoutSession{}, apperr.Operational(http.StatusServiceUnavailable, msgPaymentsOff, err)
		}
		log.Err(err).Str("func", "*bookingService.CreateCheckoutIntent").Int64("tour_id", tourID).Msg("error creating checkout session")
		return models.CheckoutSession{}, apperr.Operational(http.StatusBadGateway, msgCheckoutFailed, err)
	}

	log.Info().Str("func", "*bookingService.CreateCheckoutIntent").
		Int64("tour_id", tourID).
		Int64("user_id", user.ID).
		Str("session_id", session.ID).
		Msg("checkout session created")
	return session, nil
}

// RecordBooking stores a paid booking from the checkout success callback.
func (s *bookingService) RecordBooking(ctx context.Context, tourID, userID int64, price float64) (models.Booking, error) {
	paid := true
	return s.Create(ctx, models.BookingInput{TourID: &tourID, UserID: &userID, Price: &price, Paid: &paid})
}

func (s *bookingService) List(ctx context.Context, q query.Query) ([]models.Booking, error) {
	if err := checkPage(ctx, q, s.bookingRepository.Count); err != nil {
		return nil, err
	}
	return s.bookingRepository.List(ctx, q)
}

func (s *bookingService) Get(ctx context.Context, id int64) (models.Booking, error) {
	return s.bookingRepository.FindByID(ctx, id)
}

// Create stores a booking. Paid defaults to true.
func (s *bookingService) Create(ctx context.Context, in models.BookingInput) (models.Booking, error) {
	if err := s.validator.Validate(ctx, in); err != nil {
		return models.Booking{}, err
	}

	booking := models.Booking{TourID: *in.TourID, UserID: *in.UserID, Price: *in.Price, Paid: true}
	if in.Paid != nil {
		booking.Paid = *in.Paid
	}

	created, err := s.bookingRepository.Create(ctx, booking)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*bookingService.Create").
			Int64("tour_id", booking.TourID).
			Int64("user_id", booking.UserID).
			Msg("error creating booking")
		return models.Booking{}, fmt.Errorf("error creating booking: %w", err)
	}
	return created, nil
}

func (s *bookingService) Update(ctx context.Context, id int64, in models.BookingInput) (models.Booking, error) {
	if fields := validators.BookingUpdateFields(in); len(fields) > 0 {
		if err := s.validator.Validate(ctx, in, fields...); err != nil {
			return models.Booking{}, err
		}
	}
	return s.bookingRepository.Update(ctx, id, in)
}

func (s *bookingService) Delete(ctx context.Context, id int64) error {
	return s.bookingRepository.Delete(ctx, id)
}
