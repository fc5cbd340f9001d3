package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

// Dialect talks to PostgreSQL through pgx's database/sql driver, or lib/pq
// when the configured driver is "pq".
type Dialect struct {
	driver string
}

func New(driver string) *Dialect {
	if driver == "pq" || driver == "lib/pq" {
		return &Dialect{driver: "postgres"}
	}
	return &Dialect{driver: "pgx"}
}

func (d *Dialect) Name() string       { return "postgresql" }
func (d *Dialect) DriverName() string { return d.driver }

// DSN validates a postgres:// URL or keyword/value string; both drivers accept either form.
func (d *Dialect) DSN(url string) (string, error) {
	if _, err := pgconn.ParseConfig(url); err != nil {
		return "", fmt.Errorf("failed to parse connection URL: %w", err)
	}
	return url, nil
}

func (d *Dialect) Configure(db *sql.DB) {
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)
}

func (d *Dialect) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Dollar
}

func (d *Dialect) Quote(ident string) string {
	return pq.QuoteIdentifier(ident)
}

func (d *Dialect) MaxParams() int {
	return 65535
}
