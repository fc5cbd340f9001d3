package database

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrConnectivity means the database could not be reached or dropped the connection.
	ErrConnectivity = errors.New("database unreachable")
	// ErrConstraint means a write violated a key, uniqueness or not-null constraint.
	ErrConstraint = errors.New("constraint violation")
)

// mysql error numbers for duplicate keys, foreign keys and NOT NULL columns.
var mysqlConstraintErrors = map[uint16]bool{
	1048: true,
	1062: true,
	1216: true,
	1217: true,
	1451: true,
	1452: true,
	3819: true,
}

// classify tags driver errors with ErrConstraint or ErrConnectivity, keeping the cause.
func classify(err error) error {
	if err == nil || errors.Is(err, ErrConstraint) || errors.Is(err, ErrConnectivity) {
		return err
	}
	switch {
	case IsConstraint(err):
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	case IsConnectivity(err):
		return fmt.Errorf("%w: %w", ErrConnectivity, err)
	}
	return err
}

func IsConstraint(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return mysqlConstraintErrors[myErr.Number]
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "23"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrConstraint
	}
	return errors.Is(err, ErrConstraint)
}

func IsConnectivity(err error) bool {
	if errors.Is(err, ErrConnectivity) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "08"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "08"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrCantOpen
	}
	return false
}
