package seeder

import (
	"fmt"
	"time"

	"github.com/Rana718/ecomseed/internal/catalog"
	"github.com/Rana718/ecomseed/internal/dist"
	"github.com/Rana718/ecomseed/internal/model"
	"github.com/shopspring/decimal"
)

var (
	defaultBandLo = decimal.RequireFromString("49.90")
	defaultBandHi = decimal.RequireFromString("999.90")
	budgetLo      = decimal.NewFromInt(10000)
	budgetHi      = decimal.NewFromInt(50000)
)

// GenerateCategories emits every level-1 category followed by its level-2 children.
func GenerateCategories(gc *Context, cat *catalog.Catalog) []model.Category {
	var rows []model.Category
	for _, def := range cat.Categories {
		parent := model.Category{
			ID:    gc.NextID(model.SetCategories),
			Name:  def.Name,
			Level: 1,
		}
		rows = append(rows, parent)
		for _, child := range def.Children {
			parentID := parent.ID
			rows = append(rows, model.Category{
				ID:       gc.NextID(model.SetCategories),
				Name:     child,
				Level:    2,
				ParentID: &parentID,
			})
		}
	}
	return rows
}

type priceBand struct {
	lo, hi decimal.Decimal
}

// leafCategories returns the level-2 categories, or every category when there
// are none, each with the price band of its level-1 parent.
func leafCategories(categories []model.Category, cat *catalog.Catalog) ([]model.Category, map[int64]priceBand) {
	byName := make(map[string]catalog.CategoryDef, len(cat.Categories))
	for _, def := range cat.Categories {
		byName[def.Name] = def
	}
	byID := make(map[int64]model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	var leaves []model.Category
	for _, c := range categories {
		if c.Level == 2 {
			leaves = append(leaves, c)
		}
	}
	if len(leaves) == 0 {
		leaves = categories
	}

	bands := make(map[int64]priceBand, len(leaves))
	for _, c := range leaves {
		band := priceBand{lo: defaultBandLo, hi: defaultBandHi}
		root := c
		if c.ParentID != nil {
			if p, ok := byID[*c.ParentID]; ok {
				root = p
			}
		}
		if def, ok := byName[root.Name]; ok {
			band.lo, band.hi = def.PriceBand()
		}
		bands[c.ID] = band
	}
	return leaves, bands
}

// GenerateProducts draws between minCount and maxCount products over the leaf categories.
// Products are created in the year before history starts so every order can reference them.
func GenerateProducts(gc *Context, cat *catalog.Catalog, categories []model.Category, minCount, maxCount int, historyStart time.Time) ([]model.Product, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories to assign products to", ErrMissingPrerequisites)
	}
	leaves, bands := leafCategories(categories, cat)
	r := gc.Rand

	n := dist.IntBetween(r, minCount, maxCount)
	rows := make([]model.Product, 0, n)
	for i := 0; i < n; i++ {
		c := leaves[r.Intn(len(leaves))]
		band := bands[c.ID]

		price := dist.MoneyBetween(r, band.lo, band.hi)
		original := price.Mul(decimal.NewFromFloat(dist.FloatBetween(r, 1.0, 1.5))).Round(2)
		if original.LessThan(price) {
			original = price
		}
		cost := price.Mul(decimal.NewFromFloat(dist.FloatBetween(r, 0.4, 0.7))).Round(2)

		rows = append(rows, model.Product{
			ID:            gc.NextID(model.SetProducts),
			Name:          gc.Faker.ProductName(cat.ProductSuffixes),
			CategoryID:    c.ID,
			OriginalPrice: original,
			CurrentPrice:  price,
			Cost:          cost,
			Stock:         r.Intn(1001),
			Active:        dist.Bernoulli(r, 0.95),
			Description:   gc.Faker.Paragraph(),
			CreatedAt:     dist.DateBetween(r, historyStart.AddDate(-1, 0, 0), historyStart),
		})
	}
	return rows, nil
}

func PricesOf(products []model.Product) []model.ProductPrice {
	out := make([]model.ProductPrice, len(products))
	for i, p := range products {
		out[i] = model.ProductPrice{ID: p.ID, Price: p.CurrentPrice}
	}
	return out
}

// GenerateUsers registers n users within the three years before asOf.
func GenerateUsers(gc *Context, cat *catalog.Catalog, n int, asOf time.Time) ([]model.User, error) {
	sources, err := catalog.Table(cat.UserSources)
	if err != nil {
		return nil, fmt.Errorf("user sources: %w", err)
	}
	r := gc.Rand
	asOf = model.DateOf(asOf)

	rows := make([]model.User, 0, n)
	for i := 0; i < n; i++ {
		registered := dist.DateBetween(r, asOf.AddDate(-3, 0, 0), asOf)
		var lastLogin *time.Time
		if !dist.Bernoulli(r, 0.1) {
			d := dist.DateBetween(r, registered, asOf)
			lastLogin = &d
		}
		fullName := gc.Faker.Name()
		username := gc.Faker.Username(fullName)
		rows = append(rows, model.User{
			ID:               gc.NextID(model.SetUsers),
			Username:         username,
			FullName:         fullName,
			Email:            gc.Faker.Email(username),
			Gender:           gc.Faker.Gender(),
			Age:              dist.IntBetween(r, 18, 65),
			City:             gc.Faker.City(),
			RegistrationDate: registered,
			LastLoginDate:    lastLogin,
			Source:           sources.Pick(r),
			Tier:             LoyaltyTier(registered, lastLogin, asOf),
		})
	}
	return rows, nil
}

// LoyaltyTier scores account age and login recency as of a date.
func LoyaltyTier(registered time.Time, lastLogin *time.Time, asOf time.Time) model.LoyaltyTier {
	score := 0
	switch age := asOf.Sub(registered); {
	case age >= 2*365*24*time.Hour:
		score += 2
	case age >= 365*24*time.Hour:
		score++
	}
	if lastLogin != nil {
		switch idle := asOf.Sub(*lastLogin); {
		case idle <= 30*24*time.Hour:
			score += 2
		case idle <= 180*24*time.Hour:
			score++
		}
	}
	switch {
	case score >= 4:
		return model.TierPlatinum
	case score == 3:
		return model.TierGold
	case score == 2:
		return model.TierSilver
	default:
		return model.TierBronze
	}
}

// GenerateCampaigns chains the catalog campaigns from historyStart: each runs
// 7-14 days and the next starts 30-60 days after the previous one ends.
func GenerateCampaigns(gc *Context, cat *catalog.Catalog, historyStart time.Time) []model.Campaign {
	r := gc.Rand
	start := model.DateOf(historyStart)

	rows := make([]model.Campaign, 0, len(cat.Campaigns))
	for _, def := range cat.Campaigns {
		end := start.AddDate(0, 0, dist.IntBetween(r, 7, 14))

		c := model.Campaign{
			ID:             gc.NextID(model.SetCampaigns),
			Name:           def.Name,
			StartDate:      start,
			EndDate:        end,
			Budget:         dist.MoneyBetween(r, budgetLo, budgetHi),
			TargetAudience: def.Audience,
		}
		if dist.Bernoulli(r, 0.6) {
			c.DiscountType = model.DiscountPercentage
			c.DiscountValue = decimal.NewFromInt(int64(dist.IntBetween(r, 5, 30)))
		} else {
			c.DiscountType = model.DiscountFixed
			c.DiscountValue = decimal.NewFromInt(int64(dist.IntBetween(r, 5, 50)))
		}
		rows = append(rows, c)

		start = end.AddDate(0, 0, dist.IntBetween(r, 30, 60))
	}
	return rows
}

// GenerateTrafficSources emits the catalog sources; campaign-linked ones point
// back at a random campaign when any exist.
func GenerateTrafficSources(gc *Context, cat *catalog.Catalog, campaigns []model.Campaign) []model.TrafficSource {
	r := gc.Rand
	rows := make([]model.TrafficSource, 0, len(cat.TrafficSources))
	for _, def := range cat.TrafficSources {
		src := model.TrafficSource{
			ID:   gc.NextID(model.SetTrafficSources),
			Name: def.Name,
			Type: def.Type,
		}
		if def.CampaignLinked && len(campaigns) > 0 {
			id := campaigns[r.Intn(len(campaigns))].ID
			src.CampaignID = &id
		}
		rows = append(rows, src)
	}
	return rows
}

func sourceIDs(rows []model.TrafficSource) []int64 {
	out := make([]int64, len(rows))
	for i, s := range rows {
		out[i] = s.ID
	}
	return out
}

func userRefs(rows []model.User) []model.UserRef {
	out := make([]model.UserRef, len(rows))
	for i, u := range rows {
		out[i] = model.UserRef{ID: u.ID, RegisteredAt: u.RegistrationDate}
	}
	return out
}
