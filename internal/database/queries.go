package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/ecomseed/internal/model"
)

// queryRows runs a built select and hands each row to scan.
func (s *Store) queryRows(ctx context.Context, what string, b squirrel.SelectBuilder, scan func(*sql.Rows) error) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s query: %w", what, err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", what, classify(err))
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("failed to scan %s: %w", what, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load %s: %w", what, classify(err))
	}
	return nil
}

func (s *Store) Categories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	b := s.qb.Select("id", "name", "level", "parent_id").From(string(model.SetCategories)).OrderBy("id")
	err := s.queryRows(ctx, "categories", b, func(rows *sql.Rows) error {
		var c model.Category
		var parent sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Name, &c.Level, &parent); err != nil {
			return err
		}
		if parent.Valid {
			id := parent.Int64
			c.ParentID = &id
		}
		out = append(out, c)
		return nil
	})
	return out, err
}

func (s *Store) ProductPrices(ctx context.Context) ([]model.ProductPrice, error) {
	var out []model.ProductPrice
	b := s.qb.Select("id", "current_price").From(string(model.SetProducts)).OrderBy("id")
	err := s.queryRows(ctx, "products", b, func(rows *sql.Rows) error {
		var p model.ProductPrice
		if err := rows.Scan(&p.ID, &p.Price); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}

func (s *Store) Users(ctx context.Context) ([]model.UserRef, error) {
	var out []model.UserRef
	b := s.qb.Select("id", "registration_date").From(string(model.SetUsers)).OrderBy("id")
	err := s.queryRows(ctx, "users", b, func(rows *sql.Rows) error {
		var u model.UserRef
		if err := rows.Scan(&u.ID, &u.RegisteredAt); err != nil {
			return err
		}
		u.RegisteredAt = model.DateOf(u.RegisteredAt)
		out = append(out, u)
		return nil
	})
	return out, err
}

func (s *Store) TrafficSourceIDs(ctx context.Context) ([]int64, error) {
	return s.ids(ctx, model.SetTrafficSources)
}

func (s *Store) ids(ctx context.Context, set model.EntitySet) ([]int64, error) {
	var out []int64
	b := s.qb.Select("id").From(string(set)).OrderBy("id")
	err := s.queryRows(ctx, string(set), b, func(rows *sql.Rows) error {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		out = append(out, id)
		return nil
	})
	return out, err
}

func (s *Store) Campaigns(ctx context.Context) ([]model.Campaign, error) {
	var out []model.Campaign
	b := s.qb.Select(campaignColumns...).From(string(model.SetCampaigns)).OrderBy("id")
	err := s.queryRows(ctx, "campaigns", b, func(rows *sql.Rows) error {
		var c model.Campaign
		var discountType string
		var audience sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.StartDate, &c.EndDate, &c.Budget, &discountType, &c.DiscountValue, &audience); err != nil {
			return err
		}
		c.StartDate = model.DateOf(c.StartDate)
		c.EndDate = model.DateOf(c.EndDate)
		c.DiscountType = model.DiscountType(discountType)
		c.TargetAudience = audience.String
		out = append(out, c)
		return nil
	})
	return out, err
}

// CompletedPurchases reads back one row per line item of every Completed order.
func (s *Store) CompletedPurchases(ctx context.Context) ([]model.Purchase, error) {
	var out []model.Purchase
	b := s.qb.Select("o.id", "o.user_id", "oi.product_id", "o.order_date").
		From(string(model.SetOrders) + " o").
		Join(string(model.SetOrderItems) + " oi ON oi.order_id = o.id").
		Where(squirrel.Eq{"o.status": string(model.StatusCompleted)}).
		OrderBy("o.id", "oi.id")
	err := s.queryRows(ctx, "completed purchases", b, func(rows *sql.Rows) error {
		var p model.Purchase
		if err := rows.Scan(&p.OrderID, &p.UserID, &p.ProductID, &p.OrderDate); err != nil {
			return err
		}
		p.OrderDate = p.OrderDate.UTC()
		out = append(out, p)
		return nil
	})
	return out, err
}
