package store

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nitesh01487/natours/internal/apperr"
)

// ErrorClassification is the result type returned by [ErrorClassificator.Classify]
// and [PostgresErrorClassifier.Classify]. It indicates whether a failed database
// operation may be retried.
type ErrorClassification int

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
type PostgresErrorClassifier struct{}

const (
	// NonRetryable is the default classification for unrecognised errors,
	// constraint violations, syntax errors and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again (e.g. after a transient connection loss or a deadlock rollback).
	Retryable
)

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	return NonRetryable
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification] based on
// the PostgreSQL error code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
//
// Retryable codes:
//   - Class 08: connection exceptions (08000, 08003, 08006)
//   - Class 40: transaction rollback, serialization failure, deadlock (40000, 40001, 40P01)
//   - Class 57: cannot connect now (57P03)
//
// Any other code is [NonRetryable].
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure:
		return Retryable

	case pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected:
		return Retryable

	case pgerrcode.CannotConnectNow:
		return Retryable
	}

	return NonRetryable
}

// detailValue matches the key columns and the value of a unique violation
// detail such as `Key (email)=(jonas@example.io) already exists.`
var detailValue = regexp.MustCompile(`\((.*?)\)=\((.*)\)`)

// duplicateValue returns the offending value from detail. Composite keys keep
// their brackets so "(1, 7)" reads as one tuple.
func duplicateValue(detail string) (string, bool) {
	m := detailValue.FindStringSubmatch(detail)
	if len(m) != 3 {
		return "", false
	}
	if strings.Contains(m[1], ",") {
		return "(" + m[2] + ")", true
	}
	return m[2], true
}

// mapError translates a driver error into an application error. entity is the
// human name used in not found messages. Errors without a known mapping are
// returned unchanged.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		value := pgErr.ConstraintName
		if v, ok := duplicateValue(pgErr.Detail); ok {
			value = v
		}
		msg := fmt.Sprintf("Duplicate field value: %s. Please use another value!", value)
		return apperr.Operational(http.StatusConflict, msg, err)

	case pgerrcode.InvalidTextRepresentation,
		pgerrcode.InvalidDatetimeFormat,
		pgerrcode.NumericValueOutOfRange:
		return apperr.Validation(pgErr.ColumnName, "Invalid input data: "+pgErr.Message)

	case pgerrcode.CheckViolation,
		pgerrcode.NotNullViolation:
		return apperr.Validation(pgErr.ColumnName, fmt.Sprintf("Invalid input data: %s violates %s", entity, pgErr.ConstraintName))

	case pgerrcode.ForeignKeyViolation:
		return apperr.Validation(pgErr.ColumnName, fmt.Sprintf("Invalid input data: %s references a missing record", entity))
	}

	return err
}
