package repository

import (
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

const (
	mysqlErrDuplicateEntry = 1062
	mysqlErrNoSuchTable    = 1146
	mysqlErrDeadlock       = 1213
)

var (
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrSchemaIncomplete   = errors.New("billing schema incomplete")
)

func mysqlErrorNumber(err error) uint16 {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number
	}
	return 0
}

// IsMissingTable reports whether err is MySQL's "table doesn't exist".
func IsMissingTable(err error) bool {
	return err != nil && mysqlErrorNumber(err) == mysqlErrNoSuchTable
}

// IsDuplicateKey reports whether err is a unique key violation.
func IsDuplicateKey(err error) bool {
	return err != nil && mysqlErrorNumber(err) == mysqlErrDuplicateEntry
}

// IsDeadlock reports whether InnoDB chose the transaction as a deadlock
// victim. The whole transaction has been rolled back by the server.
func IsDeadlock(err error) bool {
	return err != nil && mysqlErrorNumber(err) == mysqlErrDeadlock
}
