package seeder

import (
	"errors"
	"testing"
	"time"

	"github.com/Rana718/ecomseed/internal/catalog"
	"github.com/Rana718/ecomseed/internal/model"
	"github.com/Rana718/ecomseed/internal/season"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixture generates the primary sets for an order run over [start, end].
func fixture(t *testing.T, seed int64, users, products int, start, end time.Time) (*Context, *catalog.Catalog, Lookups) {
	t.Helper()
	gc := NewContext(seed)
	cat, err := catalog.Default()
	require.NoError(t, err)

	categories := GenerateCategories(gc, cat)
	prods, err := GenerateProducts(gc, cat, categories, products, products, start)
	require.NoError(t, err)
	us, err := GenerateUsers(gc, cat, users, end)
	require.NoError(t, err)
	campaigns := GenerateCampaigns(gc, cat, start)
	sources := GenerateTrafficSources(gc, cat, campaigns)

	return gc, cat, Lookups{
		Categories: categories,
		Products:   PricesOf(prods),
		Users:      userRefs(us),
		Campaigns:  campaigns,
		SourceIDs:  sourceIDs(sources),
	}
}

func runEngine(t *testing.T, gc *Context, cat *catalog.Catalog, cfg OrderConfig, in Lookups, start, end time.Time) ([]model.Order, OrderStats) {
	t.Helper()
	engine, err := NewOrderEngine(gc, cat, season.Default(), cfg)
	require.NoError(t, err)

	var orders []model.Order
	stats, err := engine.Run(in, start, end, func(batch []model.Order) error {
		orders = append(orders, batch...)
		return nil
	})
	require.NoError(t, err)
	return orders, stats
}

func TestPeriodsCoverEveryDayOnce(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("periods are contiguous and cover the range", prop.ForAll(
		func(offset, span int, block bool) bool {
			start := date(2022, 1, 1).AddDate(0, 0, offset)
			end := start.AddDate(0, 0, span)
			g := GranularityDay
			if block {
				g = GranularityBlock
			}

			periods := Periods(start, end, g)
			if len(periods) == 0 || !periods[0].Start.Equal(start) {
				return false
			}
			total := 0
			for i, p := range periods {
				if p.Days() < 1 || (g == GranularityDay && p.Days() != 1) || p.Days() > blockDays {
					return false
				}
				if i > 0 && !periods[i-1].End.Equal(p.Start) {
					return false
				}
				total += p.Days()
			}
			return total == span+1 && periods[len(periods)-1].End.Equal(end.AddDate(0, 0, 1))
		},
		gen.IntRange(0, 2000),
		gen.IntRange(0, 400),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestPeriodsTruncateLastBlock(t *testing.T) {
	periods := Periods(date(2024, 1, 1), date(2024, 3, 10), GranularityBlock)
	require.Len(t, periods, 3)
	assert.Equal(t, 30, periods[0].Days())
	assert.Equal(t, 30, periods[1].Days())
	assert.Equal(t, 10, periods[2].Days())
}

func TestDiscount(t *testing.T) {
	pct := func(v int64) model.Campaign {
		return model.Campaign{DiscountType: model.DiscountPercentage, DiscountValue: decimal.NewFromInt(v)}
	}
	fixed := func(v int64) model.Campaign {
		return model.Campaign{DiscountType: model.DiscountFixed, DiscountValue: decimal.NewFromInt(v)}
	}

	tests := []struct {
		name     string
		campaign model.Campaign
		subtotal string
		want     string
	}{
		{"percentage", pct(10), "199.90", "19.99"},
		{"percentage rounds to cents", pct(15), "33.33", "5.00"},
		{"fixed", fixed(20), "100.00", "20.00"},
		{"fixed capped at subtotal", fixed(50), "30.00", "30.00"},
		{"unknown type", model.Campaign{DiscountType: "bogus", DiscountValue: decimal.NewFromInt(5)}, "10.00", "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Discount(tt.campaign, decimal.RequireFromString(tt.subtotal))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestOrderEngineInvariants(t *testing.T) {
	start, end := date(2024, 1, 1), date(2024, 6, 30)
	gc, cat, in := fixture(t, 7, 300, 60, start, end)

	cfg := DefaultOrderConfig()
	cfg.BaseDaily = 10
	orders, stats := runEngine(t, gc, cat, cfg, in, start, end)
	require.NotEmpty(t, orders)
	assert.Equal(t, len(orders), stats.Orders)

	registered := make(map[int64]time.Time)
	earliest := in.Users[0].RegisteredAt
	for _, u := range in.Users {
		registered[u.ID] = u.RegisteredAt
		if u.RegisteredAt.Before(earliest) {
			earliest = u.RegisteredAt
		}
	}
	campaigns := make(map[int64]model.Campaign)
	for _, c := range in.Campaigns {
		campaigns[c.ID] = c
	}

	seen := make(map[int64]bool)
	discounted := 0
	for _, o := range orders {
		assert.False(t, seen[o.ID], "duplicate order id %d", o.ID)
		seen[o.ID] = true
		reg, ok := registered[o.UserID]
		assert.True(t, ok)
		if !earliest.After(o.OrderDate) {
			assert.False(t, reg.After(o.OrderDate), "order %d placed before user %d registered", o.ID, o.UserID)
		}
		assert.False(t, o.OrderDate.Before(start))
		assert.True(t, o.OrderDate.Before(end.AddDate(0, 0, 1)))

		require.GreaterOrEqual(t, len(o.Items), 1)
		require.LessOrEqual(t, len(o.Items), 5)

		total, discount := decimal.Zero, decimal.Zero
		products := make(map[int64]bool)
		for _, item := range o.Items {
			assert.Equal(t, o.ID, item.OrderID)
			assert.False(t, products[item.ProductID], "product repeated within order %d", o.ID)
			products[item.ProductID] = true
			assert.GreaterOrEqual(t, item.Quantity, 1)
			assert.LessOrEqual(t, item.Quantity, 3)
			assert.False(t, item.Discount.IsNegative())
			assert.True(t, item.Discount.LessThanOrEqual(item.Subtotal()))
			total = total.Add(item.Subtotal())
			discount = discount.Add(item.Discount)
		}
		assert.True(t, total.Round(2).Equal(o.TotalAmount), "order %d total", o.ID)
		assert.True(t, discount.Round(2).Equal(o.DiscountAmount), "order %d discount", o.ID)

		active := ActiveCampaigns(in.Campaigns, o.OrderDate)
		if len(active) == 0 {
			assert.True(t, o.DiscountAmount.IsZero(), "order %d discounted outside any campaign", o.ID)
			assert.Empty(t, o.CampaignIDs)
		}
		for _, id := range o.CampaignIDs {
			c, ok := campaigns[id]
			require.True(t, ok)
			assert.True(t, c.ActiveOn(o.OrderDate), "order %d linked to inactive campaign %d", o.ID, id)
		}
		if o.DiscountAmount.IsPositive() {
			discounted++
			assert.NotEmpty(t, o.CampaignIDs)
		}

		if d, ok := cat.ChannelDevices[o.Channel]; ok {
			assert.Equal(t, d, o.Device)
		}
	}
	assert.Equal(t, discounted, stats.Discounted)
	assert.Positive(t, discounted, "campaigns in range should discount some orders")
}

func TestOrderEngineSeasonality(t *testing.T) {
	start, end := date(2024, 1, 1), date(2024, 12, 31)
	gc, cat, in := fixture(t, 2024, 3000, 250, start, end)
	require.Len(t, in.Campaigns, 8)

	orders, _ := runEngine(t, gc, cat, DefaultOrderConfig(), in, start, end)

	byMonth := make(map[time.Month]int)
	for _, o := range orders {
		byMonth[o.OrderDate.Month()]++
	}
	assert.Greater(t, byMonth[time.July], byMonth[time.January])
	assert.Greater(t, byMonth[time.June], byMonth[time.February])

	// July peaks at 1.8 and January sits at 0.8; jitter of +-20% on either
	// end bounds the observed ratio.
	require.Positive(t, byMonth[time.January])
	ratio := float64(byMonth[time.July]) / float64(byMonth[time.January])
	assert.GreaterOrEqual(t, ratio, (1.8/0.8)*(0.8/1.2))
	assert.LessOrEqual(t, ratio, (1.8/0.8)*(1.2/0.8))
}

func TestOrderEngineBatching(t *testing.T) {
	start, end := date(2024, 3, 1), date(2024, 5, 31)
	gc, cat, in := fixture(t, 11, 100, 40, start, end)

	cfg := DefaultOrderConfig()
	cfg.BatchOrders = 100
	cfg.BatchDays = 7

	engine, err := NewOrderEngine(gc, cat, season.Default(), cfg)
	require.NoError(t, err)

	var sizes []int
	var lastDay time.Time
	stats, err := engine.Run(in, start, end, func(batch []model.Order) error {
		sizes = append(sizes, len(batch))
		for _, o := range batch {
			assert.False(t, o.OrderDate.Before(lastDay), "batches must be emitted in date order")
		}
		lastDay = model.DateOf(batch[len(batch)-1].OrderDate)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, len(sizes), stats.Batches)

	total := 0
	for _, n := range sizes {
		assert.LessOrEqual(t, n, 100)
		total += n
	}
	assert.Equal(t, stats.Orders, total)
	assert.GreaterOrEqual(t, stats.Batches, 13, "a 92-day range flushes at least every 7 days")
}

func TestOrderEngineBlockGranularity(t *testing.T) {
	start, end := date(2024, 1, 1), date(2024, 12, 31)
	gc, cat, in := fixture(t, 5, 200, 50, start, end)

	cfg := DefaultOrderConfig()
	cfg.Granularity = GranularityBlock
	orders, stats := runEngine(t, gc, cat, cfg, in, start, end)

	assert.Equal(t, 13, stats.Periods)
	// 33/day over a year with multipliers averaging above 1
	assert.Greater(t, len(orders), 8000)
	assert.Less(t, len(orders), 30000)
}

func TestOrderEngineMissingPrerequisites(t *testing.T) {
	start, end := date(2024, 1, 1), date(2024, 1, 31)
	gc, cat, in := fixture(t, 3, 10, 10, start, end)

	engine, err := NewOrderEngine(gc, cat, season.Default(), DefaultOrderConfig())
	require.NoError(t, err)

	called := false
	emit := func([]model.Order) error { called = true; return nil }

	noUsers := in
	noUsers.Users = nil
	_, err = engine.Run(noUsers, start, end, emit)
	assert.ErrorIs(t, err, ErrMissingPrerequisites)

	noProducts := in
	noProducts.Products = nil
	_, err = engine.Run(noProducts, start, end, emit)
	assert.ErrorIs(t, err, ErrMissingPrerequisites)
	assert.False(t, called)
}

func TestOrderEngineStopsOnEmitError(t *testing.T) {
	start, end := date(2024, 1, 1), date(2024, 3, 31)
	gc, cat, in := fixture(t, 9, 50, 20, start, end)

	engine, err := NewOrderEngine(gc, cat, season.Default(), DefaultOrderConfig())
	require.NoError(t, err)

	boom := errors.New("insert failed")
	calls := 0
	_, err = engine.Run(in, start, end, func([]model.Order) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestOrderEngineRejectsBimodalSeason(t *testing.T) {
	gc := NewContext(1)
	cat, err := catalog.Default()
	require.NoError(t, err)

	sm := season.Default()
	sm.Monthly[0] = 2.0
	_, err = NewOrderEngine(gc, cat, sm, DefaultOrderConfig())
	assert.Error(t, err)
}

func TestCampaignBoostRaisesVolume(t *testing.T) {
	c := model.Campaign{ID: 1, StartDate: date(2024, 7, 1), EndDate: date(2024, 7, 10)}
	p := Period{Start: date(2024, 7, 1), End: date(2024, 7, 31)}

	cat, err := catalog.Default()
	require.NoError(t, err)

	cfg := DefaultOrderConfig()
	cfg.Jitter = 0
	plain, err := NewOrderEngine(NewContext(1), cat, season.Default(), cfg)
	require.NoError(t, err)
	cfg.CampaignBoost = true
	boosted, err := NewOrderEngine(NewContext(1), cat, season.Default(), cfg)
	require.NoError(t, err)

	base := plain.Volume(p, []model.Campaign{c})
	up := boosted.Volume(p, []model.Campaign{c})
	assert.GreaterOrEqual(t, float64(up), float64(base)*1.5-1)
	assert.LessOrEqual(t, float64(up), float64(base)*2.5+1)

	outside := []model.Campaign{{ID: 2, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 5)}}
	assert.Equal(t, base, boosted.Volume(p, outside))
}

func TestPickUserRespectsRegistration(t *testing.T) {
	users := byRegistration([]model.UserRef{
		{ID: 3, RegisteredAt: date(2024, 3, 1)},
		{ID: 1, RegisteredAt: date(2024, 1, 1)},
		{ID: 2, RegisteredAt: date(2024, 2, 1)},
	})
	assert.Equal(t, []int64{1, 2, 3}, []int64{users[0].ID, users[1].ID, users[2].ID})

	r := NewContext(9).Rand
	for i := 0; i < 200; i++ {
		id := pickUser(r, users, date(2024, 2, 10))
		assert.Contains(t, []int64{1, 2}, id)
	}

	// Registration day itself counts.
	for i := 0; i < 50; i++ {
		assert.Equal(t, int64(1), pickUser(r, users, date(2024, 1, 1)))
	}

	// Nobody registered yet: any user may be drawn.
	seen := make(map[int64]bool)
	for i := 0; i < 300; i++ {
		seen[pickUser(r, users, date(2023, 6, 1))] = true
	}
	assert.Len(t, seen, 3)
}
