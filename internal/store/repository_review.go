package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/models"
)

const reviewEntity = "review"

// reviewWithAuthor selects reviews joined with the author summary.
var reviewWithAuthor = psql.
	Select("r.id", "r.review", "r.rating", "r.tour_id", "r.user_id", "r.created_at", "u.name", "u.photo").
	From("reviews r").
	Join("users u ON u.id = r.user_id")

type reviewRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewReviewRepository(db *DB, logger *logger.Logger) ReviewRepository {
	logger.Debug().Msg("creating review repository")
	return &reviewRepository{
		db:     db,
		logger: logger,
	}
}

func scanReview(row rowScanner) (models.Review, error) {
	var review models.Review
	err := row.Scan(&review.ID, &review.Review, &review.Rating, &review.TourID, &review.UserID, &review.CreatedAt)
	return review, err
}

func scanReviewWithAuthor(row rowScanner) (models.Review, error) {
	var review models.Review
	author := models.UserSummary{}
	err := row.Scan(&review.ID, &review.Review, &review.Rating, &review.TourID, &review.UserID, &review.CreatedAt,
		&author.Name, &author.Photo)
	author.ID = review.UserID
	review.User = &author
	return review, err
}

// Create inserts a review. A second review of the same tour by the same user
// is reported as a duplicate field value.
func (r *reviewRepository) Create(ctx context.Context, review models.Review) (models.Review, error) {
	log := logger.FromContext(ctx)

	created, err := scanReview(r.db.QueryRowContext(ctx, createReview, review.Review, review.Rating, review.TourID, review.UserID))
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.Create").
			Int64("tour_id", review.TourID).
			Int64("user_id", review.UserID).
			Msg("error creating review")
		return models.Review{}, r.wrap(err, ErrExecutingStatement)
	}

	return created, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id int64) (models.Review, error) {
	log := logger.FromContext(ctx)

	stmt, args, err := reviewWithAuthor.Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return models.Review{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	review, err := scanReviewWithAuthor(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*reviewRepository.FindByID").Int64("review_id", id).Msg("error finding review")
		}
		return models.Review{}, r.wrap(err, ErrExecutingQuery)
	}

	return review, nil
}

func (r *reviewRepository) List(ctx context.Context, q query.Query) ([]models.Review, error) {
	log := logger.FromContext(ctx)

	stmt, args, err := q.Apply(reviewWithAuthor).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.List").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.List").Msg("error executing query")
		return nil, r.wrap(err, ErrExecutingQuery)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		review, err := scanReviewWithAuthor(rows)
		if err != nil {
			log.Err(err).Str("func", "*reviewRepository.List").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		reviews = append(reviews, review)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return reviews, nil
}

func (r *reviewRepository) Count(ctx context.Context, q query.Query) (int, error) {
	return count(ctx, r.db, "*reviewRepository.Count", q.ApplyFilters(psql.Select("COUNT(*)").From("reviews r")))
}

// Update changes the text, rating or tour of a review. The author cannot be
// changed.
func (r *reviewRepository) Update(ctx context.Context, id int64, in models.ReviewInput) (models.Review, error) {
	log := logger.FromContext(ctx)

	b := psql.Update("reviews")
	changed := false
	if in.Review != nil {
		b, changed = b.Set("review", *in.Review), true
	}
	if in.Rating != nil {
		b, changed = b.Set("rating", *in.Rating), true
	}
	if in.TourID != nil {
		b, changed = b.Set("tour_id", *in.TourID), true
	}
	if !changed {
		review, err := r.FindByID(ctx, id)
		if err != nil {
			return models.Review{}, err
		}
		review.User = nil
		return review, nil
	}

	stmt, args, err := b.Where(sq.Eq{"id": id}).Suffix("RETURNING " + reviewColumns).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.Update").Msg("error building query")
		return models.Review{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	review, err := scanReview(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.Update").Int64("review_id", id).Msg("error updating review")
		return models.Review{}, r.wrap(err, ErrExecutingStatement)
	}

	return review, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteReview, id)
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.Delete").Int64("review_id", id).Msg("error deleting review")
		return r.wrap(err, ErrExecutingStatement)
	}

	return affectedOne(res, reviewEntity)
}

// RatingStats returns the review count of a tour and the mean rating, which
// is zero when there are no reviews.
func (r *reviewRepository) RatingStats(ctx context.Context, tourID int64) (models.RatingStats, error) {
	log := logger.FromContext(ctx)

	stats := models.RatingStats{TourID: tourID}
	if err := r.db.QueryRowContext(ctx, reviewRatingStats, tourID).Scan(&stats.Quantity, &stats.Average); err != nil {
		log.Err(err).Str("func", "*reviewRepository.RatingStats").Int64("tour_id", tourID).Msg("error computing rating stats")
		return models.RatingStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return stats, nil
}

func (r *reviewRepository) wrap(err, sentinel error) error {
	return wrapError(err, sentinel, reviewEntity)
}
