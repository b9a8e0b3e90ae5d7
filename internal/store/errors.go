package store

import "errors"

// Low-level database operation errors. Repository methods wrap the driver
// error with one of these so logs and callers can tell the failing step.
// Domain failures (not found, duplicates, invalid input) are reported with
// the internal/apperr types instead.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning fails during multi-row
	// iteration.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingJSON is returned when a document column cannot be encoded
	// or decoded.
	ErrEncodingJSON = errors.New("failed to encode json column")
)
