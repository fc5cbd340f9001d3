package database

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
)

// Dialect carries what differs between providers: driver registration,
// connection string handling, placeholders, identifier quoting and DDL.
type Dialect interface {
	Name() string
	DriverName() string
	DSN(url string) (string, error)
	Configure(db *sql.DB)
	Placeholder() squirrel.PlaceholderFormat
	Quote(ident string) string
	Schema() string
	// MaxParams is the bind-parameter limit of one statement.
	MaxParams() int
}

// DatabaseConnection is the subset of *sql.DB and *sql.Tx the store executes against.
type DatabaseConnection interface {
	squirrel.ExecerContext
	squirrel.QueryerContext
}
