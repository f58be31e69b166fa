package utils

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrorRecordNotFound  = errors.New("record not found")
	ErrorDuplicateRecord = errors.New("duplicate record")
	ErrorForbidden       = errors.New("forbidden")
)

// IsNotFound reports whether err is a missing-row error from either our own
// validation helpers or gorm itself.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrorRecordNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	if errors.Is(err, ErrorDuplicateRecord) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
