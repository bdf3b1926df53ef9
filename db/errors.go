package db

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned by storage helpers that cannot express
// absence through a nil result.
var ErrNotFound = errors.New("db: not found")

const dupEntryErrNumber = 1062

func IsDupKeyErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == dupEntryErrNumber
}
