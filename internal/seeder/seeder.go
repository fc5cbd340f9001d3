package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rana718/ecomseed/internal/catalog"
	"github.com/Rana718/ecomseed/internal/model"
	"github.com/Rana718/ecomseed/internal/season"
)

type Seeder struct {
	store   Store
	report  Reporter
	catalog *catalog.Catalog
	season  season.Model
	config  SeedConfig
	gc      *Context
	graph   *DependencyGraph

	lookups   Lookups
	purchases []model.Purchase
	ordersNew bool
	summary   *Summary
}

func NewSeeder(store Store, cat *catalog.Catalog, cfg SeedConfig, report Reporter) *Seeder {
	return &Seeder{
		store:   store,
		report:  report,
		catalog: cat,
		season:  season.Default(),
		config:  cfg,
		gc:      NewContext(cfg.Seed),
		graph:   SchemaGraph(),
	}
}

// WithSeason swaps the seasonality model.
func (s *Seeder) WithSeason(m season.Model) *Seeder {
	s.season = m
	return s
}

// Run generates every entity set in dependency order. Under PolicyReplace all
// sets are cleared first; under PolicySkip a populated set is left untouched and
// its rows are read back for the sets that depend on it.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	s.summary = newSummary(s.gc.Seed)
	s.report.Begin(s.gc.Seed, s.config.Policy)

	order, err := s.graph.BuildInsertionOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to build insertion order: %w", err)
	}

	if s.config.Policy == PolicyReplace {
		clearOrder, err := s.graph.ClearOrder()
		if err != nil {
			return nil, err
		}
		if err := s.store.Clear(ctx, clearOrder); err != nil {
			return nil, fmt.Errorf("failed to clear entity sets: %w", err)
		}
		s.report.Cleared(clearOrder)
	}

	stages := map[model.EntitySet]func(context.Context) error{
		model.SetCategories:     s.seedCategories,
		model.SetProducts:       s.seedProducts,
		model.SetUsers:          s.seedUsers,
		model.SetCampaigns:      s.seedCampaigns,
		model.SetTrafficSources: s.seedTrafficSources,
		model.SetOrders:         s.seedOrders,
		model.SetBehaviors:      s.seedBehaviors,
	}

	for _, set := range order {
		stage, ok := stages[set]
		if !ok {
			continue // written by the stage that owns it
		}
		if err := stage(ctx); err != nil {
			return s.summary, fmt.Errorf("failed to seed %s: %w", set, err)
		}
	}

	s.report.Finish(s.summary)
	return s.summary, nil
}

// populated reports whether set already has rows and the policy says to keep them.
func (s *Seeder) populated(ctx context.Context, set model.EntitySet) (bool, error) {
	n, err := s.store.Count(ctx, set)
	if err != nil {
		return false, fmt.Errorf("failed to count %s: %w", set, err)
	}
	if n == 0 {
		return false, nil
	}
	r := s.summary.result(set)
	r.Existing = n
	r.Skipped = true
	s.report.Skip(set, n)
	return true, nil
}

// resumeIDs moves the ID counters of sets past the rows already stored.
// Links left in order_campaigns advance the orders counter.
func (s *Seeder) resumeIDs(ctx context.Context, sets ...model.EntitySet) error {
	for _, set := range sets {
		max, err := s.store.MaxID(ctx, set)
		if err != nil {
			return fmt.Errorf("failed to read max id of %s: %w", set, err)
		}
		counter := set
		if set == model.SetOrderCampaigns {
			counter = model.SetOrders
		}
		s.gc.StartAfter(counter, max)
	}
	return nil
}

func (s *Seeder) inserted(set model.EntitySet, n int) {
	s.summary.result(set).Inserted += n
	s.report.Inserted(set, n)
}

func (s *Seeder) warn(set model.EntitySet, err error) {
	msg := fmt.Sprintf("%s: %v", set, err)
	s.summary.Warnings = append(s.summary.Warnings, msg)
	s.report.Warn(set, err.Error())
}

func (s *Seeder) seedCategories(ctx context.Context) error {
	s.report.Stage(model.SetCategories)
	skip, err := s.populated(ctx, model.SetCategories)
	if err != nil {
		return err
	}
	if skip {
		s.lookups.Categories, err = s.store.Categories(ctx)
		return err
	}
	if err := s.resumeIDs(ctx, model.SetCategories); err != nil {
		return err
	}

	rows := GenerateCategories(s.gc, s.catalog)
	if err := s.store.InsertCategories(ctx, rows); err != nil {
		return err
	}
	s.lookups.Categories = rows
	s.inserted(model.SetCategories, len(rows))
	return nil
}

func (s *Seeder) seedProducts(ctx context.Context) error {
	s.report.Stage(model.SetProducts)
	skip, err := s.populated(ctx, model.SetProducts)
	if err != nil {
		return err
	}
	if skip {
		s.lookups.Products, err = s.store.ProductPrices(ctx)
		return err
	}
	if err := s.resumeIDs(ctx, model.SetProducts); err != nil {
		return err
	}

	rows, err := GenerateProducts(s.gc, s.catalog, s.lookups.Categories, s.config.ProductsMin, s.config.ProductsMax, s.config.Start)
	if errors.Is(err, ErrMissingPrerequisites) {
		s.warn(model.SetProducts, err)
		return nil
	}
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	if err := s.store.InsertProducts(ctx, rows); err != nil {
		return err
	}
	s.lookups.Products = PricesOf(rows)
	s.inserted(model.SetProducts, len(rows))
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	s.report.Stage(model.SetUsers)
	skip, err := s.populated(ctx, model.SetUsers)
	if err != nil {
		return err
	}
	if skip {
		s.lookups.Users, err = s.store.Users(ctx)
		return err
	}
	if err := s.resumeIDs(ctx, model.SetUsers); err != nil {
		return err
	}

	rows, err := GenerateUsers(s.gc, s.catalog, s.config.Users, s.config.End)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	if err := s.store.InsertUsers(ctx, rows); err != nil {
		return err
	}
	s.lookups.Users = userRefs(rows)
	s.inserted(model.SetUsers, len(rows))
	return nil
}

func (s *Seeder) seedCampaigns(ctx context.Context) error {
	s.report.Stage(model.SetCampaigns)
	skip, err := s.populated(ctx, model.SetCampaigns)
	if err != nil {
		return err
	}
	if skip {
		s.lookups.Campaigns, err = s.store.Campaigns(ctx)
		return err
	}
	if err := s.resumeIDs(ctx, model.SetCampaigns); err != nil {
		return err
	}

	rows := GenerateCampaigns(s.gc, s.catalog, s.config.Start)
	if err := s.store.InsertCampaigns(ctx, rows); err != nil {
		return err
	}
	s.lookups.Campaigns = rows
	s.inserted(model.SetCampaigns, len(rows))
	return nil
}

func (s *Seeder) seedTrafficSources(ctx context.Context) error {
	s.report.Stage(model.SetTrafficSources)
	skip, err := s.populated(ctx, model.SetTrafficSources)
	if err != nil {
		return err
	}
	if skip {
		s.lookups.SourceIDs, err = s.store.TrafficSourceIDs(ctx)
		return err
	}
	if err := s.resumeIDs(ctx, model.SetTrafficSources); err != nil {
		return err
	}

	rows := GenerateTrafficSources(s.gc, s.catalog, s.lookups.Campaigns)
	if err := s.store.InsertTrafficSources(ctx, rows); err != nil {
		return err
	}
	s.lookups.SourceIDs = sourceIDs(rows)
	s.inserted(model.SetTrafficSources, len(rows))
	return nil
}

func (s *Seeder) seedOrders(ctx context.Context) error {
	s.report.Stage(model.SetOrders)
	skip, err := s.populated(ctx, model.SetOrders)
	if err != nil {
		return err
	}
	if skip {
		return nil
	}
	if err := s.resumeIDs(ctx, model.SetOrders, model.SetOrderItems, model.SetOrderCampaigns); err != nil {
		return err
	}

	engine, err := NewOrderEngine(s.gc, s.catalog, s.season, s.config.Orders)
	if err != nil {
		return err
	}

	done := 0
	stats, err := engine.Run(s.lookups, s.config.Start, s.config.End, func(batch []model.Order) error {
		if err := s.store.InsertOrders(ctx, batch); err != nil {
			return err
		}
		done += len(batch)
		s.report.Progress(model.SetOrders, done)
		if s.config.Behavior.Enabled {
			s.purchases = append(s.purchases, Purchases(batch)...)
		}
		return nil
	})
	if errors.Is(err, ErrMissingPrerequisites) {
		s.warn(model.SetOrders, err)
		return nil
	}
	if err != nil {
		return err
	}

	s.ordersNew = true
	s.inserted(model.SetOrders, stats.Orders)
	s.inserted(model.SetOrderItems, stats.Items)
	s.inserted(model.SetOrderCampaigns, stats.Links)
	return nil
}

func (s *Seeder) seedBehaviors(ctx context.Context) error {
	if !s.config.Behavior.Enabled {
		return nil
	}
	s.report.Stage(model.SetBehaviors)
	skip, err := s.populated(ctx, model.SetBehaviors)
	if err != nil {
		return err
	}
	if skip {
		return nil
	}
	if err := s.resumeIDs(ctx, model.SetBehaviors); err != nil {
		return err
	}

	deriver, err := NewBehaviorDeriver(s.gc, s.catalog, s.config.Behavior)
	if err != nil {
		return err
	}

	purchases := s.purchases
	if !s.ordersNew {
		if purchases, err = s.store.CompletedPurchases(ctx); err != nil {
			return fmt.Errorf("failed to read completed purchases: %w", err)
		}
	}

	derived := deriver.FromPurchases(purchases)
	batch := s.config.Behavior.BatchEvents
	if batch <= 0 {
		batch = 5000
	}
	for i := 0; i < len(derived); i += batch {
		j := i + batch
		if j > len(derived) {
			j = len(derived)
		}
		if err := s.store.InsertBehaviors(ctx, derived[i:j]); err != nil {
			return err
		}
	}
	total := len(derived)

	_, err = deriver.Noise(s.lookups, s.config.Start, s.config.End, func(events []model.BehaviorEvent) error {
		if err := s.store.InsertBehaviors(ctx, events); err != nil {
			return err
		}
		s.report.Progress(model.SetBehaviors, total+len(events))
		total += len(events)
		return nil
	})
	if errors.Is(err, ErrMissingPrerequisites) {
		s.warn(model.SetBehaviors, err)
	} else if err != nil {
		return err
	}

	s.inserted(model.SetBehaviors, total)
	return nil
}
