package store

import (
	"context"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/models"
)

var bookingRowColumns = []string{"id", "tour_id", "user_id", "price", "paid", "created_at"}

func TestBookingRepository_Create(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(int64(1), int64(7), 397.0, true).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns).AddRow(1, 1, 7, 397.0, true, time.Now()))

	booking, err := repo.Create(context.Background(), models.Booking{TourID: 1, UserID: 7, Price: 397, Paid: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), booking.ID)
	assert.True(t, booking.Paid)
}

func TestBookingRepository_Create_MissingTour(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ColumnName: "tour_id"})

	_, err := repo.Create(context.Background(), models.Booking{TourID: 404, UserID: 7, Price: 397, Paid: true})
	status, _ := apperr.Status(err)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestBookingRepository_List(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository(db, logger.Nop())

	q, err := query.Parse(BookingSchema, nil)
	require.NoError(t, err)
	q = q.WithFilter(query.Eq("user_id", int64(7)))

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE user_id = $1 ORDER BY created_at DESC, id ASC LIMIT 100 OFFSET 0")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns).AddRow(1, 1, 7, 397.0, true, time.Now()))

	bookings, err := repo.List(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestBookingRepository_ListTourIDsByUser(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(listBookedTourIDs)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"tour_id"}).AddRow(1).AddRow(3))

	ids, err := repo.ListTourIDsByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestBookingRepository_Update(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository(db, logger.Nop())

	paid := false
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE bookings SET paid = $1 WHERE id = $2 RETURNING id")).
		WithArgs(false, int64(1)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns).AddRow(1, 1, 7, 397.0, false, time.Now()))

	booking, err := repo.Update(context.Background(), 1, models.BookingInput{Paid: &paid})
	require.NoError(t, err)
	assert.False(t, booking.Paid)
}

func TestBookingRepository_Delete_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(deleteBooking)).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "No booking found with that ID", apperr.Message(err))
}
