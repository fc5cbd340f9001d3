// Package catalog holds the fixed reference lists and weight tables the generators draw from.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/Rana718/ecomseed/internal/dist"
	"github.com/Rana718/ecomseed/internal/season"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

type Weighted[T any] struct {
	Value  T       `yaml:"value"`
	Weight float64 `yaml:"weight"`
}

type CategoryDef struct {
	Name     string    `yaml:"name"`
	Price    []float64 `yaml:"price"`
	Children []string  `yaml:"children"`
}

// PriceBand returns the category's [lo, hi] price range.
func (c CategoryDef) PriceBand() (decimal.Decimal, decimal.Decimal) {
	return decimal.NewFromFloat(c.Price[0]).Round(2), decimal.NewFromFloat(c.Price[1]).Round(2)
}

type CampaignDef struct {
	Name     string `yaml:"name"`
	Audience string `yaml:"audience"`
}

type SourceDef struct {
	Name           string `yaml:"name"`
	Type           string `yaml:"type"`
	CampaignLinked bool   `yaml:"campaign_linked"`
}

// SeasonDef overrides the demand curve. Unset fields keep the default model.
type SeasonDef struct {
	Monthly []float64   `yaml:"monthly"`
	Weekend float64     `yaml:"weekend"`
	Holiday float64     `yaml:"holiday"`
	Windows []WindowDef `yaml:"windows"`
}

// WindowDef is a yearly holiday span given as MM-DD dates.
type WindowDef struct {
	Name  string `yaml:"name"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type Catalog struct {
	Categories      []CategoryDef      `yaml:"categories"`
	ProductSuffixes []string           `yaml:"product_suffixes"`
	UserSources     []Weighted[string] `yaml:"user_sources"`
	Campaigns       []CampaignDef      `yaml:"campaigns"`
	TrafficSources  []SourceDef        `yaml:"traffic_sources"`
	Channels        []Weighted[string] `yaml:"channels"`
	PaymentMethods  []Weighted[string] `yaml:"payment_methods"`
	Devices         []Weighted[string] `yaml:"devices"`
	ChannelDevices  map[string]string  `yaml:"channel_devices"`
	OrderStatuses   []Weighted[string] `yaml:"order_statuses"`
	ItemCounts      []Weighted[int]    `yaml:"item_counts"`
	Quantities      []Weighted[int]    `yaml:"quantities"`
	Behaviors       []Weighted[string] `yaml:"behaviors"`
	Seasonality     *SeasonDef         `yaml:"seasonality"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Load reads a catalog file, falling back to the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("catalog: no categories")
	}
	for _, cat := range c.Categories {
		if len(cat.Price) != 2 || cat.Price[0] <= 0 || cat.Price[1] < cat.Price[0] {
			return fmt.Errorf("catalog: category %q needs a price band [lo, hi] with 0 < lo <= hi", cat.Name)
		}
	}
	if len(c.Campaigns) == 0 {
		return fmt.Errorf("catalog: no campaigns")
	}
	if len(c.TrafficSources) == 0 {
		return fmt.Errorf("catalog: no traffic sources")
	}
	for _, q := range c.ItemCounts {
		if q.Value < 1 {
			return fmt.Errorf("catalog: item count %d must be at least 1", q.Value)
		}
	}
	for _, q := range c.Quantities {
		if q.Value < 1 {
			return fmt.Errorf("catalog: quantity %d must be at least 1", q.Value)
		}
	}
	tables := map[string]int{
		"user_sources":    len(c.UserSources),
		"channels":        len(c.Channels),
		"payment_methods": len(c.PaymentMethods),
		"devices":         len(c.Devices),
		"order_statuses":  len(c.OrderStatuses),
		"item_counts":     len(c.ItemCounts),
		"quantities":      len(c.Quantities),
		"behaviors":       len(c.Behaviors),
	}
	for name, n := range tables {
		if n == 0 {
			return fmt.Errorf("catalog: %s is empty", name)
		}
	}
	if _, err := c.Season(); err != nil {
		return err
	}
	return nil
}

// Season returns the demand model, applying the seasonality section over the default.
func (c *Catalog) Season() (season.Model, error) {
	m := season.Default()
	def := c.Seasonality
	if def == nil {
		return m, nil
	}

	if len(def.Monthly) > 0 {
		if len(def.Monthly) != 12 {
			return m, fmt.Errorf("catalog: seasonality needs 12 monthly multipliers, got %d", len(def.Monthly))
		}
		copy(m.Monthly[:], def.Monthly)
	}
	if def.Weekend != 0 {
		m.Weekend = def.Weekend
	}
	if def.Holiday != 0 {
		m.Holiday = def.Holiday
	}
	if def.Windows != nil {
		m.Windows = make([]season.Window, 0, len(def.Windows))
		for _, w := range def.Windows {
			start, err := time.Parse("01-02", w.Start)
			if err != nil {
				return m, fmt.Errorf("catalog: seasonality window %q start: %w", w.Name, err)
			}
			end, err := time.Parse("01-02", w.End)
			if err != nil {
				return m, fmt.Errorf("catalog: seasonality window %q end: %w", w.Name, err)
			}
			m.Windows = append(m.Windows, season.Window{
				Name:       w.Name,
				StartMonth: start.Month(),
				StartDay:   start.Day(),
				EndMonth:   end.Month(),
				EndDay:     end.Day(),
			})
		}
	}

	if err := m.Validate(); err != nil {
		return m, fmt.Errorf("catalog: seasonality: %w", err)
	}
	return m, nil
}

// Table converts a weighted list into a sampling table.
func Table[T any](list []Weighted[T]) (*dist.Table[T], error) {
	choices := make([]dist.Choice[T], len(list))
	for i, w := range list {
		choices[i] = dist.Choice[T]{Value: w.Value, Weight: w.Weight}
	}
	return dist.NewTable(choices...)
}

// Values returns the values of a weighted list, ignoring weights.
func Values[T any](list []Weighted[T]) []T {
	out := make([]T, len(list))
	for i, w := range list {
		out[i] = w.Value
	}
	return out
}
