// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/models"
)

const tourEntity = "tour"

// publicTour restricts aggregate and geo reports to listed tours with a
// known start point.
const publicTour = "NOT secret_tour AND start_lat IS NOT NULL"

// tourRepository is the PostgreSQL-backed implementation of [TourRepository].
// Array and document attributes of a tour live in jsonb columns and are
// decoded on read.
type tourRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewTourRepository(db *DB, logger *logger.Logger) TourRepository {
	logger.Debug().Msg("creating tour repository")
	return &tourRepository{
		db:     db,
		logger: logger,
	}
}

func scanTour(row rowScanner) (models.Tour, error) {
	var tour models.Tour
	var images, startDates, startLocation, locations, guideIDs []byte
	err := row.Scan(&tour.ID, &tour.Name, &tour.Slug, &tour.Duration, &tour.MaxGroupSize, &tour.Difficulty,
		&tour.RatingsAverage, &tour.RatingsQuantity, &tour.Price, &tour.PriceDiscount, &tour.Summary,
		&tour.Description, &tour.ImageCover, &images, &startDates, &startLocation, &locations, &guideIDs,
		&tour.SecretTour, &tour.CreatedAt)
	if err != nil {
		return models.Tour{}, err
	}

	tour.Images = []string{}
	tour.StartDates = []time.Time{}
	tour.Locations = []models.Location{}
	tour.GuideIDs = []int64{}
	tour.Guides = []models.User{}
	for _, doc := range []struct {
		raw []byte
		dst any
	}{
		{images, &tour.Images},
		{startDates, &tour.StartDates},
		{startLocation, &tour.StartLocation},
		{locations, &tour.Locations},
		{guideIDs, &tour.GuideIDs},
	} {
		if err = fromJSON(doc.raw, doc.dst); err != nil {
			return models.Tour{}, err
		}
	}

	return tour, nil
}

// tourArgs returns the writable columns of tour in the order used by
// createTour and updateTour.
func tourArgs(tour models.Tour) ([]any, error) {
	images, err := toJSON(tour.Images)
	if err != nil {
		return nil, err
	}
	startDates, err := toJSON(tour.StartDates)
	if err != nil {
		return nil, err
	}
	locations, err := toJSON(tour.Locations)
	if err != nil {
		return nil, err
	}
	guideIDs, err := toJSON(tour.GuideIDs)
	if err != nil {
		return nil, err
	}

	var startLocation, lat, lng any
	if tour.StartLocation != nil {
		doc, err := json.Marshal(tour.StartLocation)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodingJSON, err)
		}
		startLocation = doc
		if len(tour.StartLocation.Coordinates) >= 2 {
			lat, lng = tour.StartLocation.Lat(), tour.StartLocation.Lng()
		}
	}

	return []any{
		tour.Name, tour.Slug, tour.Duration, tour.MaxGroupSize, tour.Difficulty, tour.Price, tour.PriceDiscount,
		tour.Summary, tour.Description, tour.ImageCover, images, startDates, startLocation, lat, lng, locations,
		guideIDs, tour.SecretTour,
	}, nil
}

// Create inserts a tour. A taken name is reported as a duplicate field value.
func (r *tourRepository) Create(ctx context.Context, tour models.Tour) (models.Tour, error) {
	log := logger.FromContext(ctx)

	args, err := tourArgs(tour)
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.Create").Msg("error encoding tour")
		return models.Tour{}, err
	}

	created, err := scanTour(r.db.QueryRowContext(ctx, createTour, args...))
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.Create").Msg("error creating tour")
		return models.Tour{}, r.wrap(err, ErrExecutingStatement)
	}

	return created, nil
}

func (r *tourRepository) FindByID(ctx context.Context, id int64) (models.Tour, error) {
	return r.findOne(ctx, "*tourRepository.FindByID", findTourByID, id)
}

func (r *tourRepository) FindBySlug(ctx context.Context, slug string) (models.Tour, error) {
	return r.findOne(ctx, "*tourRepository.FindBySlug", findTourBySlug, slug)
}

func (r *tourRepository) findOne(ctx context.Context, fn, stmt string, arg any) (models.Tour, error) {
	log := logger.FromContext(ctx)

	tour, err := scanTour(r.db.QueryRowContext(ctx, stmt, arg))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", fn).Msg("error finding tour")
		}
		return models.Tour{}, r.wrap(err, ErrExecutingQuery)
	}

	return tour, nil
}

// FindByIDs returns the public tours among ids ordered by id.
func (r *tourRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Tour, error) {
	if len(ids) == 0 {
		return []models.Tour{}, nil
	}
	b := psql.Select(tourColumns).From("tours").
		Where(sq.Eq{"id": ids, "secret_tour": false}).
		OrderBy("id ASC")
	return r.list(ctx, "*tourRepository.FindByIDs", b)
}

// List returns the tours matching q. Hiding secret tours is up to the caller.
func (r *tourRepository) List(ctx context.Context, q query.Query) ([]models.Tour, error) {
	return r.list(ctx, "*tourRepository.List", q.Apply(psql.Select(tourColumns).From("tours")))
}

func (r *tourRepository) Count(ctx context.Context, q query.Query) (int, error) {
	return count(ctx, r.db, "*tourRepository.Count", q.ApplyFilters(psql.Select("COUNT(*)").From("tours")))
}

// Within returns public tours whose start point lies within radius (an
// angle in radians) of (lat, lng).
func (r *tourRepository) Within(ctx context.Context, lat, lng, radius float64) ([]models.Tour, error) {
	b := psql.Select(tourColumns).From("tours").
		Where(publicTour).
		Where(sq.Expr(angularDistance+" <= ?", lat, lat, lng, radius)).
		OrderBy("id ASC")
	return r.list(ctx, "*tourRepository.Within", b)
}

func (r *tourRepository) list(ctx context.Context, fn string, b sq.SelectBuilder) ([]models.Tour, error) {
	log := logger.FromContext(ctx)

	stmt, args, err := b.ToSql()
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error executing query")
		return nil, r.wrap(err, ErrExecutingQuery)
	}
	defer rows.Close()

	tours := make([]models.Tour, 0)
	for rows.Next() {
		tour, err := scanTour(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		tours = append(tours, tour)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tours, nil
}

// ListIDs returns the id of every tour, secret ones included.
func (r *tourRepository) ListIDs(ctx context.Context) ([]int64, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listTourIDs)
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.ListIDs").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}

// Update overwrites every writable column of tour. Rating columns are only
// written by UpdateRatings.
func (r *tourRepository) Update(ctx context.Context, tour models.Tour) (models.Tour, error) {
	log := logger.FromContext(ctx)

	args, err := tourArgs(tour)
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.Update").Msg("error encoding tour")
		return models.Tour{}, err
	}

	updated, err := scanTour(r.db.QueryRowContext(ctx, updateTour, append([]any{tour.ID}, args...)...))
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.Update").Int64("tour_id", tour.ID).Msg("error updating tour")
		return models.Tour{}, r.wrap(err, ErrExecutingStatement)
	}

	return updated, nil
}

func (r *tourRepository) UpdateRatings(ctx context.Context, stats models.RatingStats) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, updateTourRatings, stats.TourID, stats.Quantity, stats.Average)
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.UpdateRatings").Int64("tour_id", stats.TourID).Msg("error updating ratings")
		return r.wrap(err, ErrExecutingStatement)
	}

	return affectedOne(res, tourEntity)
}

func (r *tourRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteTour, id)
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.Delete").Int64("tour_id", id).Msg("error deleting tour")
		return r.wrap(err, ErrExecutingStatement)
	}

	return affectedOne(res, tourEntity)
}

func (r *tourRepository) Stats(ctx context.Context, minRating float64) ([]models.TourStats, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, tourStats, minRating)
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.Stats").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	stats := make([]models.TourStats, 0)
	for rows.Next() {
		var s models.TourStats
		if err = rows.Scan(&s.Difficulty, &s.NumTours, &s.NumRatings, &s.AvgRating, &s.AvgPrice, &s.MinPrice, &s.MaxPrice); err != nil {
			log.Err(err).Str("func", "*tourRepository.Stats").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		stats = append(stats, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return stats, nil
}

func (r *tourRepository) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error) {
	log := logger.FromContext(ctx)

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows, err := r.db.QueryContext(ctx, tourMonthlyPlan, from, from.AddDate(1, 0, 0))
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.MonthlyPlan").Int("year", year).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	plan := make([]models.MonthlyPlan, 0)
	for rows.Next() {
		var (
			p     models.MonthlyPlan
			names []byte
		)
		if err = rows.Scan(&p.Month, &p.NumTourStarts, &names); err != nil {
			log.Err(err).Str("func", "*tourRepository.MonthlyPlan").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		p.Tours = []string{}
		if err = fromJSON(names, &p.Tours); err != nil {
			return nil, err
		}
		plan = append(plan, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return plan, nil
}

func (r *tourRepository) Distances(ctx context.Context, lat, lng, multiplier float64) ([]models.TourDistance, error) {
	log := logger.FromContext(ctx)

	stmt, args, err := psql.Select("id", "name").
		Column(sq.Alias(sq.Expr(angularDistance+" * ?", lat, lat, lng, metresPerRadian*multiplier), "distance")).
		From("tours").
		Where(publicTour).
		OrderBy("distance ASC").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.Distances").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.Distances").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	distances := make([]models.TourDistance, 0)
	for rows.Next() {
		var d models.TourDistance
		if err = rows.Scan(&d.ID, &d.Name, &d.Distance); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		distances = append(distances, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return distances, nil
}

func (r *tourRepository) wrap(err, sentinel error) error {
	return wrapError(err, sentinel, tourEntity)
}
