package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/ecomseed/internal/database/common"
	"github.com/Rana718/ecomseed/internal/model"
)

// rowsPerStatement caps multi-row INSERTs below the dialect's parameter limit.
const rowsPerStatement = 500

// Store persists generated entity sets through database/sql. Each Insert call
// and each Clear runs in its own transaction.
type Store struct {
	db      *sql.DB
	dialect Dialect
	qb      squirrel.StatementBuilderType
}

// Open connects and pings. Any failure is reported as ErrConnectivity.
func Open(ctx context.Context, provider, driver, url string) (*Store, error) {
	d, err := NewDialect(provider, driver)
	if err != nil {
		return nil, err
	}
	dsn, err := d.DSN(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectivity, err)
	}

	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s connection: %w", ErrConnectivity, d.Name(), err)
	}
	d.Configure(db)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrConnectivity, d.Name(), err)
	}
	return NewStore(db, d), nil
}

// NewStore wraps an open handle.
func NewStore(db *sql.DB, d Dialect) *Store {
	return &Store{
		db:      db,
		dialect: d,
		qb:      squirrel.StatementBuilder.PlaceholderFormat(d.Placeholder()),
	}
}

func (s *Store) Dialect() Dialect {
	return s.dialect
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// EnsureSchema creates every entity table that does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range common.ParseSQLStatements(s.dialect.Schema()) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", classify(err))
		}
	}
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", classify(err))
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", classify(err))
	}
	return nil
}

// insertRows writes n rows as chunked multi-row INSERT statements.
func (s *Store) insertRows(ctx context.Context, conn DatabaseConnection, table string, columns []string, n int, row func(i int) []interface{}) error {
	per := s.dialect.MaxParams() / len(columns)
	if per > rowsPerStatement {
		per = rowsPerStatement
	}

	for start := 0; start < n; start += per {
		end := start + per
		if end > n {
			end = n
		}
		insert := s.qb.Insert(table).Columns(columns...)
		for i := start; i < end; i++ {
			insert = insert.Values(row(i)...)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert for %s: %w", table, err)
		}
		if _, err := conn.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, classify(err))
		}
	}
	return nil
}

// Count returns the number of rows in set's table.
func (s *Store) Count(ctx context.Context, set model.EntitySet) (int64, error) {
	query, args, err := s.qb.Select("COUNT(*)").From(s.dialect.Quote(string(set))).ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", set, classify(err))
	}
	return n, nil
}

// MaxID returns the largest id in set's table, or 0 when it is empty.
// order_campaigns has no id column, so its largest order_id is returned.
func (s *Store) MaxID(ctx context.Context, set model.EntitySet) (int64, error) {
	column := "id"
	if set == model.SetOrderCampaigns {
		column = "order_id"
	}
	query, args, err := s.qb.Select("COALESCE(MAX(" + column + "), 0)").From(s.dialect.Quote(string(set))).ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to read max id of %s: %w", set, classify(err))
	}
	return n, nil
}

// Counts returns the row count of every entity table.
func (s *Store) Counts(ctx context.Context) (map[model.EntitySet]int64, error) {
	counts := make(map[model.EntitySet]int64, len(model.AllSets))
	for _, set := range model.AllSets {
		n, err := s.Count(ctx, set)
		if err != nil {
			return nil, err
		}
		counts[set] = n
	}
	return counts, nil
}

// Clear deletes every row of sets, in the order given, in one transaction.
// Subcategories go before their parents so self references never dangle.
func (s *Store) Clear(ctx context.Context, sets []model.EntitySet) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, set := range sets {
			table := s.dialect.Quote(string(set))
			if set == model.SetCategories {
				query, args, err := s.qb.Delete(table).Where(squirrel.NotEq{"parent_id": nil}).ToSql()
				if err != nil {
					return err
				}
				if _, err := tx.ExecContext(ctx, query, args...); err != nil {
					return fmt.Errorf("failed to clear %s: %w", set, classify(err))
				}
			}
			query, args, err := s.qb.Delete(table).ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to clear %s: %w", set, classify(err))
			}
		}
		return nil
	})
}
