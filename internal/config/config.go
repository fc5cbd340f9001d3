package config

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"

	"github.com/Rana718/ecomseed/internal/seeder"
)

const (
	DefaultConfigFile = "ecomseed.config.json"
	dateLayout        = "2006-01-02"
)

type Config struct {
	Database   Database   `json:"database" mapstructure:"database"`
	Generation Generation `json:"generation" mapstructure:"generation"`
	Behavior   Behavior   `json:"behavior" mapstructure:"behavior"`
	Output     Output     `json:"output" mapstructure:"output"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	Driver   string `json:"driver,omitempty" mapstructure:"driver"` // postgres only: pgx (default) or pq
	URLEnv   string `json:"url_env" mapstructure:"url_env"`

	// Discrete connection fields, used when the url_env variable is unset.
	Host     string            `json:"host,omitempty" mapstructure:"host"`
	Port     int               `json:"port,omitempty" mapstructure:"port"`
	User     string            `json:"user,omitempty" mapstructure:"user"`
	Password string            `json:"password,omitempty" mapstructure:"password"`
	Name     string            `json:"name,omitempty" mapstructure:"name"`
	Params   map[string]string `json:"params,omitempty" mapstructure:"params"`
}

type Generation struct {
	Seed                int64   `json:"seed" mapstructure:"seed"`
	StartDate           string  `json:"start_date,omitempty" mapstructure:"start_date"`
	EndDate             string  `json:"end_date,omitempty" mapstructure:"end_date"`
	Granularity         string  `json:"granularity" mapstructure:"granularity"`
	Policy              string  `json:"policy" mapstructure:"policy"`
	Users               int     `json:"users" mapstructure:"users"`
	ProductsMin         int     `json:"products_min" mapstructure:"products_min"`
	ProductsMax         int     `json:"products_max" mapstructure:"products_max"`
	BaseDaily           float64 `json:"base_daily" mapstructure:"base_daily"`
	Jitter              float64 `json:"jitter" mapstructure:"jitter"`
	DiscountProbability float64 `json:"discount_probability" mapstructure:"discount_probability"`
	BatchOrders         int     `json:"batch_orders" mapstructure:"batch_orders"`
	BatchDays           int     `json:"batch_days" mapstructure:"batch_days"`
	CampaignBoost       bool    `json:"campaign_boost" mapstructure:"campaign_boost"`
	CatalogPath         string  `json:"catalog_path,omitempty" mapstructure:"catalog_path"`
	CreateSchema        bool    `json:"create_schema" mapstructure:"create_schema"`
}

type Behavior struct {
	Enabled           bool    `json:"enabled" mapstructure:"enabled"`
	EventsMin         int     `json:"events_min" mapstructure:"events_min"`
	EventsMax         int     `json:"events_max" mapstructure:"events_max"`
	ReviewProbability float64 `json:"review_probability" mapstructure:"review_probability"`
	ReviewMaxDays     int     `json:"review_max_days" mapstructure:"review_max_days"`
	BatchEvents       int     `json:"batch_events" mapstructure:"batch_events"`
}

type Output struct {
	Format string `json:"format" mapstructure:"format"`
}

// SetDefaults registers defaults on v so that unset keys and bound flags
// resolve the same way.
func SetDefaults(v *viper.Viper) {
	orders := seeder.DefaultOrderConfig()
	behavior := seeder.DefaultBehaviorConfig()

	v.SetDefault("database.provider", "postgresql")
	v.SetDefault("database.url_env", "DATABASE_URL")

	v.SetDefault("generation.granularity", string(orders.Granularity))
	v.SetDefault("generation.policy", string(seeder.PolicySkip))
	v.SetDefault("generation.users", 3000)
	v.SetDefault("generation.products_min", 200)
	v.SetDefault("generation.products_max", 300)
	v.SetDefault("generation.base_daily", orders.BaseDaily)
	v.SetDefault("generation.jitter", orders.Jitter)
	v.SetDefault("generation.discount_probability", orders.DiscountProbability)
	v.SetDefault("generation.batch_orders", orders.BatchOrders)
	v.SetDefault("generation.batch_days", orders.BatchDays)

	v.SetDefault("behavior.events_min", behavior.EventsMin)
	v.SetDefault("behavior.events_max", behavior.EventsMax)
	v.SetDefault("behavior.review_probability", behavior.ReviewProbability)
	v.SetDefault("behavior.review_max_days", behavior.ReviewMaxDays)
	v.SetDefault("behavior.batch_events", behavior.BatchEvents)

	v.SetDefault("output.format", "text")
}

// Load reads the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Window resolves the order history range. An empty end date means today and
// an empty start date means two years before the end.
func (c *Config) Window(now time.Time) (time.Time, time.Time, error) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if c.Generation.EndDate != "" {
		t, err := time.Parse(dateLayout, c.Generation.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q: %w", c.Generation.EndDate, err)
		}
		end = t
	}

	start := end.AddDate(-2, 0, 0)
	if c.Generation.StartDate != "" {
		t, err := time.Parse(dateLayout, c.Generation.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q: %w", c.Generation.StartDate, err)
		}
		start = t
	}
	return start, end, nil
}

func (c *Config) Validate() error {
	switch c.Database.Provider {
	case "postgresql", "postgres", "mysql", "sqlite", "sqlite3":
	default:
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v",
			c.Database.Provider, []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"})
	}
	switch c.Database.Driver {
	case "", "pgx", "pq":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	g := c.Generation
	start, end, err := c.Window(time.Now())
	if err != nil {
		return err
	}
	if start.After(end) {
		return fmt.Errorf("start_date %s is after end_date %s", start.Format(dateLayout), end.Format(dateLayout))
	}

	switch seeder.Granularity(g.Granularity) {
	case seeder.GranularityDay, seeder.GranularityBlock:
	default:
		return fmt.Errorf("unknown granularity %q (use day or block)", g.Granularity)
	}
	switch seeder.Policy(g.Policy) {
	case seeder.PolicySkip, seeder.PolicyReplace:
	default:
		return fmt.Errorf("unknown policy %q (use skip or replace)", g.Policy)
	}

	if g.Users <= 0 {
		return fmt.Errorf("users must be positive, got %d", g.Users)
	}
	if g.ProductsMin <= 0 || g.ProductsMax < g.ProductsMin {
		return fmt.Errorf("invalid product range %d-%d", g.ProductsMin, g.ProductsMax)
	}
	if g.BaseDaily <= 0 {
		return fmt.Errorf("base_daily must be positive, got %v", g.BaseDaily)
	}
	if g.BatchOrders <= 0 || g.BatchDays <= 0 {
		return fmt.Errorf("batch_orders and batch_days must be positive")
	}
	if err := probability("jitter", g.Jitter); err != nil {
		return err
	}
	if err := probability("discount_probability", g.DiscountProbability); err != nil {
		return err
	}

	b := c.Behavior
	if b.EventsMin < 0 || b.EventsMax < b.EventsMin {
		return fmt.Errorf("invalid behavior event range %d-%d", b.EventsMin, b.EventsMax)
	}
	if err := probability("review_probability", b.ReviewProbability); err != nil {
		return err
	}
	if b.ReviewMaxDays < 1 || b.BatchEvents <= 0 {
		return fmt.Errorf("review_max_days and batch_events must be positive")
	}

	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", c.Output.Format)
	}
	return nil
}

func probability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s must be within [0,1], got %v", name, p)
	}
	return nil
}

// GetDatabaseURL prefers the url_env variable and falls back to the discrete fields.
func (c *Config) GetDatabaseURL() (string, error) {
	if dbURL := os.Getenv(c.Database.URLEnv); dbURL != "" {
		return dbURL, nil
	}

	d := c.Database
	if d.Name == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", d.URLEnv)
	}

	switch d.Provider {
	case "sqlite", "sqlite3":
		return d.Name, nil
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(hostOr(d.Host), strconv.Itoa(portOr(d.Port, 3306)))
		mc.DBName = d.Name
		mc.Params = d.Params
		return mc.FormatDSN(), nil
	default:
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(hostOr(d.Host), strconv.Itoa(portOr(d.Port, 5432))),
			Path:   "/" + d.Name,
		}
		if d.User != "" {
			u.User = url.UserPassword(d.User, d.Password)
		}
		q := url.Values{}
		for k, v := range d.Params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
}

func hostOr(h string) string {
	if h == "" {
		return "localhost"
	}
	return h
}

func portOr(p, def int) int {
	if p == 0 {
		return def
	}
	return p
}

// SeedConfig converts the generation and behavior sections for the seeder.
func (c *Config) SeedConfig(now time.Time) (seeder.SeedConfig, error) {
	start, end, err := c.Window(now)
	if err != nil {
		return seeder.SeedConfig{}, err
	}
	g, b := c.Generation, c.Behavior

	return seeder.SeedConfig{
		Seed:        g.Seed,
		Start:       start,
		End:         end,
		Policy:      seeder.Policy(g.Policy),
		Users:       g.Users,
		ProductsMin: g.ProductsMin,
		ProductsMax: g.ProductsMax,
		Orders: seeder.OrderConfig{
			Granularity:         seeder.Granularity(g.Granularity),
			BaseDaily:           g.BaseDaily,
			Jitter:              g.Jitter,
			DiscountProbability: g.DiscountProbability,
			BatchOrders:         g.BatchOrders,
			BatchDays:           g.BatchDays,
			CampaignBoost:       g.CampaignBoost,
		},
		Behavior: seeder.BehaviorConfig{
			Enabled:           b.Enabled,
			EventsMin:         b.EventsMin,
			EventsMax:         b.EventsMax,
			ReviewProbability: b.ReviewProbability,
			ReviewMaxDays:     b.ReviewMaxDays,
			BatchEvents:       b.BatchEvents,
		},
	}, nil
}

// DefaultConfig returns the configuration written by init.
func DefaultConfig(provider string) (*Config, error) {
	v := viper.New()
	v.Set("database.provider", provider)
	cfg, err := LoadFrom(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteDefault writes cfg as indented JSON and refuses to overwrite an existing file.
func WriteDefault(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
