package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/internal/store"
	"github.com/nitesh01487/natours/internal/validators"
	"github.com/nitesh01487/natours/models"
)

// reviewService calls the RatingAggregator after every successful write.
// Updates and deletes read the review first, so the tour it belonged to is
// known even after the row is gone or moved.
type reviewService struct {
	reviewRepository store.ReviewRepository
	ratings          RatingAggregator
	validator        validators.Validator
	logger           *logger.Logger
}

func NewReviewService(reviewRepository store.ReviewRepository, ratings RatingAggregator, logger *logger.Logger) ReviewService {
	return &reviewService{
		reviewRepository: reviewRepository,
		ratings:          ratings,
		validator:        validators.NewReviewValidator(),
		logger:           logger,
	}
}

func (s *reviewService) List(ctx context.Context, q query.Query) ([]models.Review, error) {
	if err := checkPage(ctx, q, s.reviewRepository.Count); err != nil {
		return nil, err
	}
	return s.reviewRepository.List(ctx, q)
}

func (s *reviewService) Get(ctx context.Context, id int64) (models.Review, error) {
	return s.reviewRepository.FindByID(ctx, id)
}

// Create stores a review by author. The author always comes from the
// session, never from the request body.
func (s *reviewService) Create(ctx context.Context, author models.User, in models.ReviewInput) (models.Review, error) {
	log := logger.FromContext(ctx)

	in.UserID = &author.ID
	if err := s.validator.Validate(ctx, in); err != nil {
		return models.Review{}, err
	}

	review, err := s.reviewRepository.Create(ctx, models.Review{
		Review: *in.Review,
		Rating: *in.Rating,
		TourID: *in.TourID,
		UserID: author.ID,
	})
	if err != nil {
		if isDuplicate(err) {
			return models.Review{}, apperr.Operational(http.StatusConflict, msgAlreadyReviewed, err)
		}
		log.Err(err).Str("func", "*reviewService.Create").Int64("tour_id", *in.TourID).Msg("error creating review")
		return models.Review{}, err
	}

	if _, err = s.ratings.Recompute(ctx, review.TourID); err != nil {
		return models.Review{}, err
	}

	summary := author.Summary()
	review.User = &summary
	return review, nil
}

// Update changes text, rating or tour of a review. Ratings of the previous
// and, when moved, the new tour are recomputed.
func (s *reviewService) Update(ctx context.Context, principal models.User, id int64, in models.ReviewInput) (models.Review, error) {
	log := logger.FromContext(ctx)

	before, err := s.owned(ctx, principal, id)
	if err != nil {
		return models.Review{}, err
	}

	in.UserID = nil
	if fields := validators.ReviewUpdateFields(in); len(fields) > 0 {
		if err = s.validator.Validate(ctx, in, fields...); err != nil {
			return models.Review{}, err
		}
	}

	after, err := s.reviewRepository.Update(ctx, id, in)
	if err != nil {
		if isDuplicate(err) {
			return models.Review{}, apperr.Operational(http.StatusConflict, msgAlreadyReviewed, err)
		}
		log.Err(err).Str("func", "*reviewService.Update").Int64("review_id", id).Msg("error updating review")
		return models.Review{}, err
	}

	if _, err = s.ratings.Recompute(ctx, before.TourID); err != nil {
		return models.Review{}, err
	}
	if after.TourID != before.TourID {
		if _, err = s.ratings.Recompute(ctx, after.TourID); err != nil {
			return models.Review{}, err
		}
	}

	after.User = before.User
	return after, nil
}

func (s *reviewService) Delete(ctx context.Context, principal models.User, id int64) error {
	before, err := s.owned(ctx, principal, id)
	if err != nil {
		return err
	}

	if err = s.reviewRepository.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*reviewService.Delete").Int64("review_id", id).Msg("error deleting review")
		return err
	}

	_, err = s.ratings.Recompute(ctx, before.TourID)
	return err
}

// owned loads review id and checks that principal may change it.
func (s *reviewService) owned(ctx context.Context, principal models.User, id int64) (models.Review, error) {
	review, err := s.reviewRepository.FindByID(ctx, id)
	if err != nil {
		return models.Review{}, err
	}
	if principal.Role != models.RoleAdmin && review.UserID != principal.ID {
		logger.FromContext(ctx).Info().
			Str("func", "*reviewService.owned").
			Int64("review_id", id).
			Int64("user_id", principal.ID).
			Msg("review belongs to another user")
		return models.Review{}, apperr.ErrForbidden
	}
	return review, nil
}

func isDuplicate(err error) bool {
	var opErr *apperr.OperationalError
	return errors.As(err, &opErr) && opErr.Status == http.StatusConflict
}
