package store

import (
	"context"

	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/logger"
)

// Repositories groups every repository backed by one database connection.
type Repositories struct {
	UserRepository    UserRepository
	TourRepository    TourRepository
	ReviewRepository  ReviewRepository
	BookingRepository BookingRepository

	db *DB
}

// NewRepositories connects to PostgreSQL and builds the repositories on top
// of the connection.
func NewRepositories(ctx context.Context, cfg config.DB, log *logger.Logger) (*Repositories, error) {
	db, err := NewConnectPostgres(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return newRepositories(db, log), nil
}

func newRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db, log),
		TourRepository:    NewTourRepository(db, log),
		ReviewRepository:  NewReviewRepository(db, log),
		BookingRepository: NewBookingRepository(db, log),
		db:                db,
	}
}

// IsRetryable reports whether err is a transient database failure.
func (r *Repositories) IsRetryable(err error) bool {
	return r.db.IsRetryable(err)
}

// Ping checks that the database is reachable.
func (r *Repositories) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repositories) Close() error {
	return r.db.Close()
}
