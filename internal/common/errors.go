package common

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Error kinds surfaced by the repository layer. Callers match with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)

const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrForeignKeyFails = 1452
)

// TranslateDBError maps GORM/driver errors onto the error kinds above.
// Anything unrecognized is returned unchanged.
func TranslateDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDuplicateEntry:
			return ErrConstraintViolation
		case mysqlErrForeignKeyFails:
			// A write referenced an account or conversation that does not exist.
			return ErrNotFound
		}
	}

	if errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, gorm.ErrInvalidDB) {
		return ErrStorageUnavailable
	}

	return err
}
