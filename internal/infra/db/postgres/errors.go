package postgres

import (
	"errors"

	"github.com/jackc/pgconn"
)

// 23505 is unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
