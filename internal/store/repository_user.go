package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/query"
	"github.com/nitesh01487/natours/models"
)

const userEntity = "user"

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup and credential updates against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user       models.User
		resetToken sql.NullString
	)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Photo, &user.Role, &user.Password,
		&user.PasswordChangedAt, &resetToken, &user.PasswordResetExpires, &user.Active, &user.CreatedAt)
	user.PasswordResetToken = resetToken.String
	return user, err
}

// Create persists a new account and returns it with server-assigned fields.
// A taken email is reported as a duplicate field value.
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Name, user.Email, user.Photo, user.Role, user.Password, user.PasswordChangedAt)
	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error creating user")
		return models.User{}, r.wrap(err, ErrExecutingStatement)
	}

	return created, nil
}

func (r *userRepository) FindActiveByID(ctx context.Context, id int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindActiveByID", findActiveUserByID, id)
}

func (r *userRepository) FindActiveByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindActiveByEmail", findActiveUserByEmail, email)
}

func (r *userRepository) findOne(ctx context.Context, fn, stmt string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, stmt, arg))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", fn).Msg("error finding user")
		}
		return models.User{}, r.wrap(err, ErrExecutingQuery)
	}

	return user, nil
}

// FindActiveByIDs returns the active users among ids ordered by id. Missing
// ids are skipped.
func (r *userRepository) FindActiveByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	b := psql.Select(userColumns).From("users").
		Where(sq.Eq{"id": ids, "active": true}).
		OrderBy("id ASC")
	return r.list(ctx, "*userRepository.FindActiveByIDs", b)
}

// List returns the active users matching q.
func (r *userRepository) List(ctx context.Context, q query.Query) ([]models.User, error) {
	b := q.Apply(psql.Select(userColumns).From("users").Where(sq.Eq{"active": true}))
	return r.list(ctx, "*userRepository.List", b)
}

func (r *userRepository) list(ctx context.Context, fn string, b sq.SelectBuilder) ([]models.User, error) {
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

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// Count returns the number of active users matching the filters of q.
func (r *userRepository) Count(ctx context.Context, q query.Query) (int, error) {
	b := q.ApplyFilters(psql.Select("COUNT(*)").From("users").Where(sq.Eq{"active": true}))
	return count(ctx, r.db, "*userRepository.Count", b)
}

// Update applies the non-nil fields of update to an active account.
func (r *userRepository) Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return r.FindActiveByID(ctx, id)
	}

	b := psql.Update("users")
	if update.Name != nil {
		b = b.Set("name", *update.Name)
	}
	if update.Email != nil {
		b = b.Set("email", sq.Expr("lower(?)", *update.Email))
	}
	if update.Photo != nil {
		b = b.Set("photo", *update.Photo)
	}
	if update.Role != nil {
		b = b.Set("role", *update.Role)
	}
	if update.Active != nil {
		b = b.Set("active", *update.Active)
	}
	b = b.Where(sq.Eq{"id": id, "active": true}).Suffix("RETURNING " + userColumns)

	stmt, args, err := b.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Int64("user_id", id).Msg("error updating user")
		return models.User{}, r.wrap(err, ErrExecutingStatement)
	}

	return user, nil
}

// UpdatePassword stores a new password digest and clears any pending reset
// token.
func (r *userRepository) UpdatePassword(ctx context.Context, id int64, digest string, changedAt time.Time) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, updateUserPassword, id, digest, changedAt))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Int64("user_id", id).Msg("error updating password")
		return models.User{}, r.wrap(err, ErrExecutingStatement)
	}

	return user, nil
}

// SetResetToken stores the digest and expiry of a pending password reset.
// An empty digest clears both fields.
func (r *userRepository) SetResetToken(ctx context.Context, id int64, digest string, expiresAt *time.Time) error {
	log := logger.FromContext(ctx)

	token := sql.NullString{String: digest, Valid: digest != ""}
	if !token.Valid {
		expiresAt = nil
	}

	res, err := r.db.ExecContext(ctx, setUserResetToken, id, token, expiresAt)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetResetToken").Int64("user_id", id).Msg("error storing reset token")
		return r.wrap(err, ErrExecutingStatement)
	}

	return affectedOne(res, userEntity)
}

// ConsumeResetToken clears and returns the active account whose pending
// reset token matches digest and has not expired at now.
func (r *userRepository) ConsumeResetToken(ctx context.Context, digest string, now time.Time) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, consumeUserResetToken, digest, now))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*userRepository.ConsumeResetToken").Msg("error consuming reset token")
		}
		return models.User{}, r.wrap(err, ErrExecutingStatement)
	}

	return user, nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteUser, id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Delete").Int64("user_id", id).Msg("error deleting user")
		return r.wrap(err, ErrExecutingStatement)
	}

	return affectedOne(res, userEntity)
}

func (r *userRepository) wrap(err, sentinel error) error {
	return wrapError(err, sentinel, userEntity)
}
