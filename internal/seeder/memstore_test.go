package seeder

import (
	"context"
	"errors"

	"github.com/Rana718/ecomseed/internal/model"
)

// memStore is an in-memory Store for driving the seeder without a database.
type memStore struct {
	categories []model.Category
	products   []model.Product
	users      []model.User
	campaigns  []model.Campaign
	sources    []model.TrafficSource
	orders     []model.Order
	behaviors  []model.BehaviorEvent

	// itemIDs and linkOrderIDs are order_items and order_campaigns rows
	// whose order was deleted.
	itemIDs      []int64
	linkOrderIDs []int64

	orderBatches int
	failOrdersAt int // fail the nth InsertOrders call when > 0
}

var errInjected = errors.New("injected constraint violation")

func (m *memStore) Count(ctx context.Context, set model.EntitySet) (int64, error) {
	switch set {
	case model.SetCategories:
		return int64(len(m.categories)), nil
	case model.SetProducts:
		return int64(len(m.products)), nil
	case model.SetUsers:
		return int64(len(m.users)), nil
	case model.SetCampaigns:
		return int64(len(m.campaigns)), nil
	case model.SetTrafficSources:
		return int64(len(m.sources)), nil
	case model.SetOrders:
		return int64(len(m.orders)), nil
	case model.SetOrderItems:
		n := len(m.itemIDs)
		for _, o := range m.orders {
			n += len(o.Items)
		}
		return int64(n), nil
	case model.SetOrderCampaigns:
		n := len(m.linkOrderIDs)
		for _, o := range m.orders {
			n += len(o.CampaignIDs)
		}
		return int64(n), nil
	case model.SetBehaviors:
		return int64(len(m.behaviors)), nil
	}
	return 0, nil
}

func (m *memStore) Clear(ctx context.Context, sets []model.EntitySet) error {
	for _, set := range sets {
		switch set {
		case model.SetCategories:
			m.categories = nil
		case model.SetProducts:
			m.products = nil
		case model.SetUsers:
			m.users = nil
		case model.SetCampaigns:
			m.campaigns = nil
		case model.SetTrafficSources:
			m.sources = nil
		case model.SetOrders:
			m.orders = nil
		case model.SetBehaviors:
			m.behaviors = nil
		}
	}
	return nil
}

func (m *memStore) InsertCategories(ctx context.Context, rows []model.Category) error {
	m.categories = append(m.categories, rows...)
	return nil
}

func (m *memStore) InsertProducts(ctx context.Context, rows []model.Product) error {
	m.products = append(m.products, rows...)
	return nil
}

func (m *memStore) InsertUsers(ctx context.Context, rows []model.User) error {
	m.users = append(m.users, rows...)
	return nil
}

func (m *memStore) InsertCampaigns(ctx context.Context, rows []model.Campaign) error {
	m.campaigns = append(m.campaigns, rows...)
	return nil
}

func (m *memStore) InsertTrafficSources(ctx context.Context, rows []model.TrafficSource) error {
	m.sources = append(m.sources, rows...)
	return nil
}

func (m *memStore) InsertOrders(ctx context.Context, orders []model.Order) error {
	m.orderBatches++
	if m.failOrdersAt > 0 && m.orderBatches == m.failOrdersAt {
		return errInjected
	}
	m.orders = append(m.orders, orders...)
	return nil
}

func (m *memStore) InsertBehaviors(ctx context.Context, events []model.BehaviorEvent) error {
	m.behaviors = append(m.behaviors, events...)
	return nil
}

func (m *memStore) Categories(ctx context.Context) ([]model.Category, error) {
	return m.categories, nil
}

func (m *memStore) ProductPrices(ctx context.Context) ([]model.ProductPrice, error) {
	return PricesOf(m.products), nil
}

func (m *memStore) Users(ctx context.Context) ([]model.UserRef, error) {
	return userRefs(m.users), nil
}

func (m *memStore) MaxID(ctx context.Context, set model.EntitySet) (int64, error) {
	var max int64
	bump := func(id int64) {
		if id > max {
			max = id
		}
	}
	switch set {
	case model.SetCategories:
		for _, c := range m.categories {
			bump(c.ID)
		}
	case model.SetProducts:
		for _, p := range m.products {
			bump(p.ID)
		}
	case model.SetUsers:
		for _, u := range m.users {
			bump(u.ID)
		}
	case model.SetCampaigns:
		for _, c := range m.campaigns {
			bump(c.ID)
		}
	case model.SetTrafficSources:
		for _, s := range m.sources {
			bump(s.ID)
		}
	case model.SetOrders:
		for _, o := range m.orders {
			bump(o.ID)
		}
	case model.SetOrderItems:
		for _, id := range m.itemIDs {
			bump(id)
		}
		for _, o := range m.orders {
			for _, it := range o.Items {
				bump(it.ID)
			}
		}
	case model.SetOrderCampaigns:
		for _, id := range m.linkOrderIDs {
			bump(id)
		}
		for _, o := range m.orders {
			if len(o.CampaignIDs) > 0 {
				bump(o.ID)
			}
		}
	case model.SetBehaviors:
		for _, e := range m.behaviors {
			bump(e.ID)
		}
	}
	return max, nil
}

func (m *memStore) Campaigns(ctx context.Context) ([]model.Campaign, error) {
	return m.campaigns, nil
}

func (m *memStore) TrafficSourceIDs(ctx context.Context) ([]int64, error) {
	return sourceIDs(m.sources), nil
}

func (m *memStore) CompletedPurchases(ctx context.Context) ([]model.Purchase, error) {
	return Purchases(m.orders), nil
}

// nopReporter discards progress.
type nopReporter struct {
	warnings int
	skips    map[model.EntitySet]int64
}

func (r *nopReporter) Begin(int64, Policy) {}
func (r *nopReporter) Stage(model.EntitySet) {}
func (r *nopReporter) Cleared([]model.EntitySet) {}
func (r *nopReporter) Progress(model.EntitySet, int) {}
func (r *nopReporter) Inserted(model.EntitySet, int) {}
func (r *nopReporter) Warn(model.EntitySet, string) { r.warnings++ }
func (r *nopReporter) Finish(*Summary) {}
func (r *nopReporter) Skip(set model.EntitySet, n int64) {
	if r.skips == nil {
		r.skips = make(map[model.EntitySet]int64)
	}
	r.skips[set] = n
}
