package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeForeignKeyViolation = "23503"
	codeSerializationFail   = "40001"
	codeDeadlockDetected    = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// IsRetryable reports whether the server aborted the statement in a way a
// fresh transaction may get past.
func IsRetryable(err error) bool {
	switch pgCode(err) {
	case codeSerializationFail, codeDeadlockDetected:
		return true
	}
	return pgconn.SafeToRetry(err)
}
