package database

import (
	"context"
	"database/sql"

	"github.com/Rana718/ecomseed/internal/model"
)

var (
	categoryColumns = []string{"id", "name", "level", "parent_id"}
	productColumns  = []string{"id", "name", "category_id", "original_price", "current_price", "cost", "stock", "is_active", "description", "created_at"}
	userColumns     = []string{"id", "username", "full_name", "email", "gender", "age", "city", "registration_date", "last_login_date", "source", "loyalty_tier"}
	campaignColumns = []string{"id", "name", "start_date", "end_date", "budget", "discount_type", "discount_value", "target_audience"}
	sourceColumns   = []string{"id", "name", "source_type", "campaign_id"}
	orderColumns    = []string{"id", "user_id", "order_date", "status", "payment_method", "channel", "device", "total_amount", "discount_amount"}
	itemColumns     = []string{"id", "order_id", "product_id", "quantity", "unit_price", "discount"}
	linkColumns     = []string{"order_id", "campaign_id"}
	behaviorColumns = []string{"id", "user_id", "product_id", "behavior_type", "behavior_time", "source_id", "order_id"}
)

func (s *Store) InsertCategories(ctx context.Context, rows []model.Category) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.insertRows(ctx, tx, string(model.SetCategories), categoryColumns, len(rows), func(i int) []interface{} {
			c := rows[i]
			return []interface{}{c.ID, c.Name, c.Level, c.ParentID}
		})
	})
}

func (s *Store) InsertProducts(ctx context.Context, rows []model.Product) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.insertRows(ctx, tx, string(model.SetProducts), productColumns, len(rows), func(i int) []interface{} {
			p := rows[i]
			return []interface{}{p.ID, p.Name, p.CategoryID, p.OriginalPrice, p.CurrentPrice, p.Cost, p.Stock, p.Active, p.Description, p.CreatedAt}
		})
	})
}

func (s *Store) InsertUsers(ctx context.Context, rows []model.User) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.insertRows(ctx, tx, string(model.SetUsers), userColumns, len(rows), func(i int) []interface{} {
			u := rows[i]
			return []interface{}{u.ID, u.Username, u.FullName, u.Email, u.Gender, u.Age, u.City, u.RegistrationDate, u.LastLoginDate, u.Source, string(u.Tier)}
		})
	})
}

func (s *Store) InsertCampaigns(ctx context.Context, rows []model.Campaign) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.insertRows(ctx, tx, string(model.SetCampaigns), campaignColumns, len(rows), func(i int) []interface{} {
			c := rows[i]
			return []interface{}{c.ID, c.Name, c.StartDate, c.EndDate, c.Budget, string(c.DiscountType), c.DiscountValue, c.TargetAudience}
		})
	})
}

func (s *Store) InsertTrafficSources(ctx context.Context, rows []model.TrafficSource) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.insertRows(ctx, tx, string(model.SetTrafficSources), sourceColumns, len(rows), func(i int) []interface{} {
			src := rows[i]
			return []interface{}{src.ID, src.Name, src.Type, src.CampaignID}
		})
	})
}

// InsertOrders writes one batch of finalized orders with their items and
// campaign links. A failure anywhere rolls back the whole batch.
func (s *Store) InsertOrders(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	var items []model.OrderItem
	var links []model.CampaignOrderLink
	for _, o := range orders {
		items = append(items, o.Items...)
		for _, id := range o.CampaignIDs {
			links = append(links, model.CampaignOrderLink{OrderID: o.ID, CampaignID: id})
		}
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		err := s.insertRows(ctx, tx, string(model.SetOrders), orderColumns, len(orders), func(i int) []interface{} {
			o := orders[i]
			return []interface{}{o.ID, o.UserID, o.OrderDate, string(o.Status), o.PaymentMethod, o.Channel, o.Device, o.TotalAmount, o.DiscountAmount}
		})
		if err != nil {
			return err
		}

		err = s.insertRows(ctx, tx, string(model.SetOrderItems), itemColumns, len(items), func(i int) []interface{} {
			it := items[i]
			return []interface{}{it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.Discount}
		})
		if err != nil {
			return err
		}

		return s.insertRows(ctx, tx, string(model.SetOrderCampaigns), linkColumns, len(links), func(i int) []interface{} {
			return []interface{}{links[i].OrderID, links[i].CampaignID}
		})
	})
}

func (s *Store) InsertBehaviors(ctx context.Context, events []model.BehaviorEvent) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.insertRows(ctx, tx, string(model.SetBehaviors), behaviorColumns, len(events), func(i int) []interface{} {
			ev := events[i]
			return []interface{}{ev.ID, ev.UserID, ev.ProductID, string(ev.Type), ev.Timestamp, ev.SourceID, ev.OrderID}
		})
	})
}
