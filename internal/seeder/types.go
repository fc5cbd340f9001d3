package seeder

import (
	"context"
	"errors"
	"time"

	"github.com/Rana718/ecomseed/internal/model"
)

// ErrMissingPrerequisites means a dependent set cannot be generated because a
// set it draws from (users, products) is empty. The seeder downgrades it to a warning.
var ErrMissingPrerequisites = errors.New("missing prerequisite rows")

// Policy decides what happens to an entity set that already has rows.
type Policy string

const (
	PolicySkip    Policy = "skip"    // keep existing rows, report the count
	PolicyReplace Policy = "replace" // clear every set, then regenerate
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityBlock Granularity = "block" // 30-day blocks
)

type SeedConfig struct {
	Seed        int64
	Start       time.Time // first day of order history
	End         time.Time // last day of order history, inclusive
	Policy      Policy
	Users       int
	ProductsMin int
	ProductsMax int
	Orders      OrderConfig
	Behavior    BehaviorConfig
}

type OrderConfig struct {
	Granularity         Granularity
	BaseDaily           float64 // orders per day before seasonality
	Jitter              float64 // uniform spread applied to each period's volume
	DiscountProbability float64 // per item, when a campaign is active
	BatchOrders         int     // commit at least every this many orders
	BatchDays           int     // and at least every this many days of history
	CampaignBoost       bool
}

type BehaviorConfig struct {
	Enabled           bool
	EventsMin         int
	EventsMax         int
	ReviewProbability float64
	ReviewMaxDays     int
	BatchEvents       int
}

func DefaultOrderConfig() OrderConfig {
	return OrderConfig{
		Granularity:         GranularityDay,
		BaseDaily:           33,
		Jitter:              0.2,
		DiscountProbability: 0.7,
		BatchOrders:         1000,
		BatchDays:           50,
	}
}

func DefaultBehaviorConfig() BehaviorConfig {
	return BehaviorConfig{
		EventsMin:         10,
		EventsMax:         50,
		ReviewProbability: 0.3,
		ReviewMaxDays:     14,
		BatchEvents:       5000,
	}
}

// Lookups are the read-only structures generators hand to later stages.
type Lookups struct {
	Categories []model.Category
	Products   []model.ProductPrice
	Users      []model.UserRef
	Campaigns  []model.Campaign
	SourceIDs  []int64
}

// Store is the persistence boundary. Every Insert call is one commit unit.
type Store interface {
	Count(ctx context.Context, set model.EntitySet) (int64, error)
	MaxID(ctx context.Context, set model.EntitySet) (int64, error)
	Clear(ctx context.Context, sets []model.EntitySet) error

	InsertCategories(ctx context.Context, rows []model.Category) error
	InsertProducts(ctx context.Context, rows []model.Product) error
	InsertUsers(ctx context.Context, rows []model.User) error
	InsertCampaigns(ctx context.Context, rows []model.Campaign) error
	InsertTrafficSources(ctx context.Context, rows []model.TrafficSource) error
	InsertOrders(ctx context.Context, orders []model.Order) error
	InsertBehaviors(ctx context.Context, events []model.BehaviorEvent) error

	Categories(ctx context.Context) ([]model.Category, error)
	ProductPrices(ctx context.Context) ([]model.ProductPrice, error)
	Users(ctx context.Context) ([]model.UserRef, error)
	Campaigns(ctx context.Context) ([]model.Campaign, error)
	TrafficSourceIDs(ctx context.Context) ([]int64, error)
	CompletedPurchases(ctx context.Context) ([]model.Purchase, error)
}

// Reporter receives progress as the run advances.
type Reporter interface {
	Begin(seed int64, policy Policy)
	Stage(set model.EntitySet)
	Cleared(sets []model.EntitySet)
	Skip(set model.EntitySet, existing int64)
	Progress(set model.EntitySet, done int)
	Inserted(set model.EntitySet, n int)
	Warn(set model.EntitySet, msg string)
	Finish(summary *Summary)
}

type SetResult struct {
	Inserted int
	Existing int64
	Skipped  bool
}

type Summary struct {
	Seed     int64
	Results  map[model.EntitySet]*SetResult
	Warnings []string
}

func newSummary(seed int64) *Summary {
	return &Summary{Seed: seed, Results: make(map[model.EntitySet]*SetResult)}
}

func (s *Summary) result(set model.EntitySet) *SetResult {
	r, ok := s.Results[set]
	if !ok {
		r = &SetResult{}
		s.Results[set] = r
	}
	return r
}
