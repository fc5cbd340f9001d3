package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

type Dialect struct{}

func New() *Dialect {
	return &Dialect{}
}

func (d *Dialect) Name() string       { return "sqlite" }
func (d *Dialect) DriverName() string { return "sqlite3" }

// DSN strips a sqlite:// or file: prefix and turns on foreign keys and WAL
// unless the caller passed options of their own.
func (d *Dialect) DSN(url string) (string, error) {
	path := strings.TrimPrefix(url, "sqlite://")
	path = strings.TrimPrefix(path, "file:")
	if !strings.Contains(path, "?") {
		path += "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
	}
	return "file:" + path, nil
}

// Configure pins one connection; sqlite serializes writers anyway.
func (d *Dialect) Configure(db *sql.DB) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)
}

func (d *Dialect) Placeholder() squirrel.PlaceholderFormat {
	return squirrel.Question
}

func (d *Dialect) Quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func (d *Dialect) MaxParams() int {
	return 32766
}
