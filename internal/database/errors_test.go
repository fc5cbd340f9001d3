package database

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		constraint   bool
		connectivity bool
	}{
		{"mysql duplicate key", &mysqldrv.MySQLError{Number: 1062}, true, false},
		{"mysql foreign key", &mysqldrv.MySQLError{Number: 1452}, true, false},
		{"mysql syntax", &mysqldrv.MySQLError{Number: 1064}, false, false},
		{"mysql bad connection", mysqldrv.ErrInvalidConn, false, true},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, true, false},
		{"pgx connection failure", &pgconn.PgError{Code: "08006"}, false, true},
		{"pgx undefined table", &pgconn.PgError{Code: "42P01"}, false, false},
		{"pq foreign key", &pq.Error{Code: "23503"}, true, false},
		{"pq connection", &pq.Error{Code: "08001"}, false, true},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, true, false},
		{"sqlite cannot open", sqlite3.Error{Code: sqlite3.ErrCantOpen}, false, true},
		{"bad conn", driver.ErrBadConn, false, true},
		{"wrapped", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true, false},
		{"plain", errors.New("boom"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			assert.Equal(t, tt.constraint, errors.Is(got, ErrConstraint))
			assert.Equal(t, tt.connectivity, errors.Is(got, ErrConnectivity))
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, classify(nil))
}

func TestClassifyDoesNotDoubleWrap(t *testing.T) {
	once := classify(&mysqldrv.MySQLError{Number: 1062})
	assert.Same(t, once, classify(once))
}
