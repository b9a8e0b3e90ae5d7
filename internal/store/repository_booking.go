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

const bookingEntity = "booking"

type bookingRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewBookingRepository(db *DB, logger *logger.Logger) BookingRepository {
	logger.Debug().Msg("creating booking repository")
	return &bookingRepository{
		db:     db,
		logger: logger,
	}
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var booking models.Booking
	err := row.Scan(&booking.ID, &booking.TourID, &booking.UserID, &booking.Price, &booking.Paid, &booking.CreatedAt)
	return booking, err
}

// Create inserts a booking. Unknown tour or user references are reported as
// invalid input.
func (r *bookingRepository) Create(ctx context.Context, booking models.Booking) (models.Booking, error) {
	log := logger.FromContext(ctx)

	created, err := scanBooking(r.db.QueryRowContext(ctx, createBooking, booking.TourID, booking.UserID, booking.Price, booking.Paid))
	if err != nil {
		log.Err(err).Str("func", "*bookingRepository.Create").
			Int64("tour_id", booking.TourID).
			Int64("user_id", booking.UserID).
			Msg("error creating booking")
		return models.Booking{}, r.wrap(err, ErrExecutingStatement)
	}

	return created, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int64) (models.Booking, error) {
	log := logger.FromContext(ctx)

	booking, err := scanBooking(r.db.QueryRowContext(ctx, findBookingByID, id))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*bookingRepository.FindByID").Int64("booking_id", id).Msg("error finding booking")
		}
		return models.Booking{}, r.wrap(err, ErrExecutingQuery)
	}

	return booking, nil
}

func (r *bookingRepository) List(ctx context.Context, q query.Query) ([]models.Booking, error) {
	log := logger.FromContext(ctx)

	stmt, args, err := q.Apply(psql.Select(bookingColumns).From("bookings")).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*bookingRepository.List").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Err(err).Str("func", "*bookingRepository.List").Msg("error executing query")
		return nil, r.wrap(err, ErrExecutingQuery)
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			log.Err(err).Str("func", "*bookingRepository.List").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context, q query.Query) (int, error) {
	return count(ctx, r.db, "*bookingRepository.Count", q.ApplyFilters(psql.Select("COUNT(*)").From("bookings")))
}

// ListTourIDsByUser returns the distinct tours a user has booked.
func (r *bookingRepository) ListTourIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listBookedTourIDs, userID)
	if err != nil {
		log.Err(err).Str("func", "*bookingRepository.ListTourIDsByUser").Int64("user_id", userID).Msg("error executing query")
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

func (r *bookingRepository) Update(ctx context.Context, id int64, in models.BookingInput) (models.Booking, error) {
	log := logger.FromContext(ctx)

	b := psql.Update("bookings")
	changed := false
	if in.TourID != nil {
		b, changed = b.Set("tour_id", *in.TourID), true
	}
	if in.UserID != nil {
		b, changed = b.Set("user_id", *in.UserID), true
	}
	if in.Price != nil {
		b, changed = b.Set("price", *in.Price), true
	}
	if in.Paid != nil {
		b, changed = b.Set("paid", *in.Paid), true
	}
	if !changed {
		return r.FindByID(ctx, id)
	}

	stmt, args, err := b.Where(sq.Eq{"id": id}).Suffix("RETURNING " + bookingColumns).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*bookingRepository.Update").Msg("error building query")
		return models.Booking{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		log.Err(err).Str("func", "*bookingRepository.Update").Int64("booking_id", id).Msg("error updating booking")
		return models.Booking{}, r.wrap(err, ErrExecutingStatement)
	}

	return booking, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteBooking, id)
	if err != nil {
		log.Err(err).Str("func", "*bookingRepository.Delete").Int64("booking_id", id).Msg("error deleting booking")
		return r.wrap(err, ErrExecutingStatement)
	}

	return affectedOne(res, bookingEntity)
}

func (r *bookingRepository) wrap(err, sentinel error) error {
	return wrapError(err, sentinel, bookingEntity)
}
