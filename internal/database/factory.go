package database

import (
	"fmt"

	"github.com/Rana718/ecomseed/internal/database/mysql"
	"github.com/Rana718/ecomseed/internal/database/postgres"
	"github.com/Rana718/ecomseed/internal/database/sqlite"
)

// NewDialect resolves a provider name. driver only matters for postgres,
// where "pq" selects lib/pq instead of pgx.
func NewDialect(provider, driver string) (Dialect, error) {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New(driver), nil
	case "mysql":
		return mysql.New(), nil
	case "sqlite", "sqlite3":
		return sqlite.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", provider)
	}
}
