package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeNumericOverflow     = "22003"
)

// As returns the postgres error inside err, if any.
func As(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func IsNumericOverflow(err error) bool {
	pgErr, ok := As(err)
	return ok && pgErr.Code == CodeNumericOverflow
}

func IsUniqueViolation(err error, constraint string) bool {
	pgErr, ok := As(err)
	return ok && pgErr.Code == CodeUniqueViolation && pgErr.ConstraintName == constraint
}
