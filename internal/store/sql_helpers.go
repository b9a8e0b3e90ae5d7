package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/nitesh01487/natours/internal/apperr"
	"github.com/nitesh01487/natours/internal/logger"
)

// wrapError maps err to an application error when it has a known meaning and
// otherwise wraps it with sentinel.
func wrapError(err, sentinel error, entity string) error {
	mapped := mapError(err, entity)
	if mapped != err {
		return mapped
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

// affectedOne reports a not found error when a statement touched no rows.
func affectedOne(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return apperr.NotFound(entity)
	}
	return nil
}

func count(ctx context.Context, db *DB, fn string, b sq.SelectBuilder) (int, error) {
	log := logger.FromContext(ctx)

	stmt, args, err := b.ToSql()
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	if err = db.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		log.Err(err).Str("func", fn).Msg("error counting rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n, nil
}

// toJSON encodes a document column. Nil slices are stored as empty arrays.
func toJSON[T any](v []T) ([]byte, error) {
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}
	return b, nil
}

// fromJSON decodes a document column. NULL leaves dst untouched.
func fromJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingJSON, err)
	}
	return nil
}
