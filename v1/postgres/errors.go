package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Common database error types that can be used by consumers of this package.
// These provide a standardized set of errors that abstract away the
// underlying database-specific error details.
var (
	// ErrRecordNotFound is returned when a query doesn't find any matching records
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert or update violates a unique constraint
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when an operation violates a foreign key constraint
	ErrForeignKey = errors.New("foreign key violation")

	// ErrInvalidData is returned when the data being saved doesn't meet validation rules
	ErrInvalidData = errors.New("invalid data")

	// ErrUnavailable is returned when the server cannot serve the query right now
	ErrUnavailable = errors.New("database unavailable")
)

// PostgreSQL SQLSTATE codes the package classifies.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeInvalidText          = "22P02"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeAdminShutdown        = "57P01"
	codeTooManyConnections   = "53300"
	classConnectionException = "08"
)

// TranslateError converts GORM/database-specific errors into standardized application errors.
// The original error stays in the chain, so errors.As still reaches the
// *pgconn.PgError. If an error doesn't match any known type, it's returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	case errors.Is(err, gorm.ErrInvalidData):
		return ErrInvalidData
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == codeUniqueViolation:
		return errors.Join(ErrDuplicateKey, err)
	case pgErr.Code == codeForeignKeyViolation:
		return errors.Join(ErrForeignKey, err)
	case pgErr.Code == codeInvalidText:
		return errors.Join(ErrInvalidData, err)
	case pgErr.Code == codeAdminShutdown,
		pgErr.Code == codeTooManyConnections,
		strings.HasPrefix(pgErr.Code, classConnectionException):
		return errors.Join(ErrUnavailable, err)
	}
	return err
}

// IsRetryable reports whether running the same statement again may succeed:
// serialization failures, deadlocks, and connection loss.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeSerializationFailure, codeDeadlockDetected, codeAdminShutdown, codeTooManyConnections:
		return true
	}
	return strings.HasPrefix(pgErr.Code, classConnectionException)
}

// TranslateError is the method form of the package function, for callers
// holding a database.Client.
func (p *Postgres) TranslateError(err error) error {
	return TranslateError(err)
}

// IsRetryable is the method form of the package function.
func (p *Postgres) IsRetryable(err error) bool {
	return IsRetryable(err)
}
