package seeder

import (
	"fmt"
	"time"

	"github.com/Rana718/ecomseed/internal/catalog"
	"github.com/Rana718/ecomseed/internal/dist"
	"github.com/Rana718/ecomseed/internal/model"
)

// BehaviorDeriver derives purchase and review events from completed orders and
// adds browse/cart/favorite noise per user.
type BehaviorDeriver struct {
	gc    *Context
	cfg   BehaviorConfig
	noise *dist.Table[model.BehaviorType]
}

func NewBehaviorDeriver(gc *Context, cat *catalog.Catalog, cfg BehaviorConfig) (*BehaviorDeriver, error) {
	choices := make([]dist.Choice[model.BehaviorType], 0, len(cat.Behaviors))
	for _, b := range cat.Behaviors {
		t := model.BehaviorType(b.Value)
		switch t {
		case model.BehaviorBrowse, model.BehaviorCart, model.BehaviorFavorite:
		default:
			return nil, fmt.Errorf("behavior %q cannot be drawn as noise", b.Value)
		}
		choices = append(choices, dist.Choice[model.BehaviorType]{Value: t, Weight: b.Weight})
	}
	noise, err := dist.NewTable(choices...)
	if err != nil {
		return nil, fmt.Errorf("behaviors: %w", err)
	}
	return &BehaviorDeriver{gc: gc, cfg: cfg, noise: noise}, nil
}

// Purchases flattens the completed orders into one purchase per line item.
func Purchases(orders []model.Order) []model.Purchase {
	var out []model.Purchase
	for _, o := range orders {
		if o.Status != model.StatusCompleted {
			continue
		}
		for _, item := range o.Items {
			out = append(out, model.Purchase{
				OrderID:   o.ID,
				UserID:    o.UserID,
				ProductID: item.ProductID,
				OrderDate: o.OrderDate,
			})
		}
	}
	return out
}

// FromPurchases emits exactly one purchase event per purchase and, with
// ReviewProbability, a review 1..ReviewMaxDays days later.
func (d *BehaviorDeriver) FromPurchases(purchases []model.Purchase) []model.BehaviorEvent {
	r := d.gc.Rand
	maxDays := d.cfg.ReviewMaxDays
	if maxDays < 1 {
		maxDays = 1
	}

	events := make([]model.BehaviorEvent, 0, len(purchases))
	for _, p := range purchases {
		productID, orderID := p.ProductID, p.OrderID
		events = append(events, model.BehaviorEvent{
			ID:        d.gc.NextID(model.SetBehaviors),
			UserID:    p.UserID,
			ProductID: &productID,
			Type:      model.BehaviorPurchase,
			Timestamp: p.OrderDate,
			OrderID:   &orderID,
		})
		if dist.Bernoulli(r, d.cfg.ReviewProbability) {
			events = append(events, model.BehaviorEvent{
				ID:        d.gc.NextID(model.SetBehaviors),
				UserID:    p.UserID,
				ProductID: &productID,
				Type:      model.BehaviorReview,
				Timestamp: p.OrderDate.AddDate(0, 0, dist.IntBetween(r, 1, maxDays)),
				OrderID:   &orderID,
			})
		}
	}
	return events
}

// Noise emits EventsMin..EventsMax browse/cart/favorite events per user against
// random products and times in [start, end], flushing every BatchEvents events.
func (d *BehaviorDeriver) Noise(in Lookups, start, end time.Time, emit func([]model.BehaviorEvent) error) (int, error) {
	if len(in.Users) == 0 || len(in.Products) == 0 {
		return 0, fmt.Errorf("%w: noise events need users and products", ErrMissingPrerequisites)
	}
	r := d.gc.Rand
	from := model.DateOf(start)
	to := model.DateOf(end).AddDate(0, 0, 1)

	batch := d.cfg.BatchEvents
	if batch <= 0 {
		batch = 5000
	}
	pending := make([]model.BehaviorEvent, 0, batch)
	total := 0

	for _, user := range in.Users {
		n := dist.IntBetween(r, d.cfg.EventsMin, d.cfg.EventsMax)
		for i := 0; i < n; i++ {
			productID := in.Products[r.Intn(len(in.Products))].ID
			ev := model.BehaviorEvent{
				ID:        d.gc.NextID(model.SetBehaviors),
				UserID:    user.ID,
				ProductID: &productID,
				Type:      d.noise.Pick(r),
				Timestamp: dist.TimeBetween(r, from, to),
			}
			if len(in.SourceIDs) > 0 {
				sourceID := in.SourceIDs[r.Intn(len(in.SourceIDs))]
				ev.SourceID = &sourceID
			}
			pending = append(pending, ev)
			if len(pending) >= batch {
				if err := emit(pending); err != nil {
					return total, err
				}
				total += len(pending)
				pending = make([]model.BehaviorEvent, 0, batch)
			}
		}
	}
	if len(pending) > 0 {
		if err := emit(pending); err != nil {
			return total, err
		}
		total += len(pending)
	}
	return total, nil
}
