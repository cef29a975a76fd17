package mariadb

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Common database error types that can be used by consumers of this package.
var (
	// ErrRecordNotFound is returned when a query doesn't find any matching records
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert or update violates a unique constraint
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when an operation violates a foreign key constraint
	ErrForeignKey = errors.New("foreign key violation")

	// ErrInvalidData is returned when the data being saved doesn't meet validation rules
	ErrInvalidData = errors.New("invalid data")
)

// MySQL server error numbers the package classifies.
const (
	errDupEntry           = 1062
	errNoReferencedRow    = 1452
	errRowIsReferenced    = 1451
	errTruncatedWrongVal  = 1292
	errLockWaitTimeout    = 1205
	errLockDeadlock       = 1213
	errTooManyConnections = 1040
)

// TranslateError converts GORM/driver errors into the standardized errors above.
// Unknown errors are returned unchanged.
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

	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return err
	}
	switch myErr.Number {
	case errDupEntry:
		return errors.Join(ErrDuplicateKey, err)
	case errNoReferencedRow, errRowIsReferenced:
		return errors.Join(ErrForeignKey, err)
	case errTruncatedWrongVal:
		return errors.Join(ErrInvalidData, err)
	}
	return err
}

// IsRetryable reports whether running the same statement again may succeed:
// lock wait timeouts, deadlocks, and a dropped connection.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return false
	}
	switch myErr.Number {
	case errLockWaitTimeout, errLockDeadlock, errTooManyConnections:
		return true
	}
	return false
}

// TranslateError is the method form of the package function.
func (m *MariaDB) TranslateError(err error) error {
	return TranslateError(err)
}

// IsRetryable is the method form of the package function.
func (m *MariaDB) IsRetryable(err error) bool {
	return IsRetryable(err)
}
