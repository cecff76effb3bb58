package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE class 23 = integrity constraint violation.
const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err was caused by a unique-constraint
// violation. Repositories use it to map duplicate inserts to their own error
// taxonomy without spreading driver-specific inspection around the codebase.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
