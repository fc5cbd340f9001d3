package seeder

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/Rana718/ecomseed/internal/catalog"
	"github.com/Rana718/ecomseed/internal/dist"
	"github.com/Rana718/ecomseed/internal/model"
	"github.com/Rana718/ecomseed/internal/season"
	"github.com/shopspring/decimal"
)

const blockDays = 30

// Period is a half-open span of whole days [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Days() int {
	return int(math.Round(p.End.Sub(p.Start).Hours() / 24))
}

// Periods splits the inclusive date range [start, end] into consecutive periods.
// Every day belongs to exactly one period; the last block may be shorter.
func Periods(start, end time.Time, g Granularity) []Period {
	step := 1
	if g == GranularityBlock {
		step = blockDays
	}
	from := model.DateOf(start)
	stop := model.DateOf(end).AddDate(0, 0, 1)

	var out []Period
	for p := from; p.Before(stop); {
		next := p.AddDate(0, 0, step)
		if next.After(stop) {
			next = stop
		}
		out = append(out, Period{Start: p, End: next})
		p = next
	}
	return out
}

// OrderStats counts what one engine run emitted.
type OrderStats struct {
	Periods    int
	Orders     int
	Items      int
	Links      int
	Discounted int
	Batches    int
}

// OrderEngine turns the primary entity lookups into a dated stream of finalized orders.
type OrderEngine struct {
	gc     *Context
	cfg    OrderConfig
	season season.Model

	campaignChannels *dist.Table[string]
	channels         *dist.Table[string]
	channelDevices   map[string]string
	devices          *dist.Table[string]
	payments         *dist.Table[string]
	statuses         *dist.Table[model.OrderStatus]
	itemCounts       *dist.Table[int]
	quantities       *dist.Table[int]
}

func NewOrderEngine(gc *Context, cat *catalog.Catalog, sm season.Model, cfg OrderConfig) (*OrderEngine, error) {
	if err := sm.Validate(); err != nil {
		return nil, fmt.Errorf("seasonality model: %w", err)
	}
	e := &OrderEngine{
		gc:             gc,
		cfg:            cfg,
		season:         sm,
		channelDevices: cat.ChannelDevices,
	}

	var err error
	if e.campaignChannels, err = catalog.Table(cat.Channels); err != nil {
		return nil, fmt.Errorf("channels: %w", err)
	}
	e.channels = dist.Uniform(catalog.Values(cat.Channels)...)
	if e.devices, err = catalog.Table(cat.Devices); err != nil {
		return nil, fmt.Errorf("devices: %w", err)
	}
	if e.payments, err = catalog.Table(cat.PaymentMethods); err != nil {
		return nil, fmt.Errorf("payment methods: %w", err)
	}
	if e.itemCounts, err = catalog.Table(cat.ItemCounts); err != nil {
		return nil, fmt.Errorf("item counts: %w", err)
	}
	if e.quantities, err = catalog.Table(cat.Quantities); err != nil {
		return nil, fmt.Errorf("quantities: %w", err)
	}

	statuses := make([]dist.Choice[model.OrderStatus], len(cat.OrderStatuses))
	for i, s := range cat.OrderStatuses {
		statuses[i] = dist.Choice[model.OrderStatus]{Value: model.OrderStatus(s.Value), Weight: s.Weight}
	}
	if e.statuses, err = dist.NewTable(statuses...); err != nil {
		return nil, fmt.Errorf("order statuses: %w", err)
	}
	return e, nil
}

// Volume is the order count for one period: base volume times the seasonality
// multiplier, jittered, floored.
func (e *OrderEngine) Volume(p Period, campaigns []model.Campaign) int {
	r := e.gc.Rand
	base := e.cfg.BaseDaily * float64(p.Days())
	v := base * e.season.Period(p.Start, p.End)
	if e.cfg.CampaignBoost && anyCampaignOverlaps(campaigns, p) {
		v *= dist.FloatBetween(r, 1.5, 2.5)
	}
	v = dist.Jitter(r, v, e.cfg.Jitter)
	if v < 0 {
		return 0
	}
	return int(math.Floor(v))
}

// Run walks every period from start to end and emits finalized orders in batches.
// A batch is flushed every BatchOrders orders and every BatchDays days of history.
// Empty users or products return ErrMissingPrerequisites before anything is emitted.
func (e *OrderEngine) Run(in Lookups, start, end time.Time, emit func([]model.Order) error) (OrderStats, error) {
	var stats OrderStats
	if len(in.Users) == 0 {
		return stats, fmt.Errorf("%w: no users", ErrMissingPrerequisites)
	}
	if len(in.Products) == 0 {
		return stats, fmt.Errorf("%w: no products", ErrMissingPrerequisites)
	}
	users := byRegistration(in.Users)

	batchOrders := e.cfg.BatchOrders
	if batchOrders <= 0 {
		batchOrders = 1000
	}
	pending := make([]model.Order, 0, batchOrders)
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		if err := emit(pending); err != nil {
			return err
		}
		stats.Batches++
		pending = make([]model.Order, 0, batchOrders)
		return nil
	}

	days := 0
	for _, p := range Periods(start, end, e.cfg.Granularity) {
		stats.Periods++
		n := e.Volume(p, in.Campaigns)
		for i := 0; i < n; i++ {
			order, err := e.buildOrder(p, in, users)
			if err != nil {
				return stats, err
			}
			stats.Orders++
			stats.Items += len(order.Items)
			stats.Links += len(order.CampaignIDs)
			if order.DiscountAmount.IsPositive() {
				stats.Discounted++
			}
			pending = append(pending, order)
			if len(pending) >= batchOrders {
				if err := flush(); err != nil {
					return stats, err
				}
			}
		}

		days += p.Days()
		if e.cfg.BatchDays > 0 && days >= e.cfg.BatchDays {
			if err := flush(); err != nil {
				return stats, err
			}
			days = 0
		}
	}
	if err := flush(); err != nil {
		return stats, err
	}
	return stats, nil
}

// byRegistration returns a copy of users sorted by registration date, then id.
func byRegistration(users []model.UserRef) []model.UserRef {
	out := append([]model.UserRef(nil), users...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].RegisteredAt.Before(out[j].RegisteredAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// pickUser draws uniformly among users registered on or before at. When
// nobody had registered yet it falls back to the whole population.
func pickUser(r *rand.Rand, users []model.UserRef, at time.Time) int64 {
	k := sort.Search(len(users), func(i int) bool {
		return users[i].RegisteredAt.After(at)
	})
	if k == 0 {
		k = len(users)
	}
	return users[r.Intn(k)].ID
}

func (e *OrderEngine) buildOrder(p Period, in Lookups, users []model.UserRef) (model.Order, error) {
	r := e.gc.Rand

	at := dist.TimeBetween(r, p.Start, p.End)
	active := ActiveCampaigns(in.Campaigns, at)
	userID := pickUser(r, users, at)

	channel := e.channels.Pick(r)
	if len(active) > 0 {
		channel = e.campaignChannels.Pick(r)
	}
	device, ok := e.channelDevices[channel]
	if !ok {
		device = e.devices.Pick(r)
	}

	b := model.NewOrderBuilder(e.gc.NextID(model.SetOrders), userID, at).
		Status(e.statuses.Pick(r)).
		Payment(e.payments.Pick(r)).
		Channel(channel, device)

	k := e.itemCounts.Pick(r)
	for _, idx := range dist.SampleIndices(r, len(in.Products), k) {
		product := in.Products[idx]
		item := model.OrderItem{
			ID:        e.gc.NextID(model.SetOrderItems),
			ProductID: product.ID,
			Quantity:  e.quantities.Pick(r),
			UnitPrice: product.Price,
			Discount:  decimal.Zero,
		}

		var campaignID int64
		if len(active) > 0 && dist.Bernoulli(r, e.cfg.DiscountProbability) {
			c := active[r.Intn(len(active))]
			item.Discount = Discount(c, item.Subtotal())
			campaignID = c.ID
		}
		if err := b.AddItem(item, campaignID); err != nil {
			return model.Order{}, err
		}
	}
	return b.Build()
}

// ActiveCampaigns returns the campaigns whose date range contains at's calendar date.
func ActiveCampaigns(campaigns []model.Campaign, at time.Time) []model.Campaign {
	var active []model.Campaign
	for _, c := range campaigns {
		if c.ActiveOn(at) {
			active = append(active, c)
		}
	}
	return active
}

func anyCampaignOverlaps(campaigns []model.Campaign, p Period) bool {
	last := p.End.AddDate(0, 0, -1)
	for _, c := range campaigns {
		if !model.DateOf(c.StartDate).After(last) && !model.DateOf(c.EndDate).Before(p.Start) {
			return true
		}
	}
	return false
}

// Discount is the campaign's reduction on one line subtotal, rounded to cents
// and capped so the effective price never goes negative.
func Discount(c model.Campaign, subtotal decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	switch c.DiscountType {
	case model.DiscountPercentage:
		d = subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	case model.DiscountFixed:
		d = c.DiscountValue.Round(2)
	default:
		return decimal.Zero
	}
	if d.GreaterThan(subtotal) {
		d = subtotal
	}
	if d.IsNegative() {
		d = decimal.Zero
	}
	return d
}
