package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rana718/ecomseed/internal/catalog"
	"github.com/Rana718/ecomseed/internal/report"
	"github.com/Rana718/ecomseed/internal/seeder"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen", "seed"},
	Short:   "Generate mock e-commerce data",
	Long: `
Generate categories, products, users, campaigns, traffic sources, orders and
(optionally) user behavior events, then write them in dependency order.

With --policy skip (default) any table that already has rows is left alone and
its rows are reused by later stages. With --policy replace every table is
cleared first.

The same --seed against an empty database reproduces the same dataset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		seedCfg, err := cfg.SeedConfig(time.Now())
		if err != nil {
			return err
		}

		cat, err := loadCatalog(cfg.Generation.CatalogPath)
		if err != nil {
			return err
		}
		demand, err := cat.Season()
		if err != nil {
			return err
		}

		if seedCfg.Policy == seeder.PolicyReplace {
			force, _ := cmd.Flags().GetBool("force")
			ok, err := confirmReplace(cfg.Output.Format, force)
			if err != nil {
				return err
			}
			if !ok {
				color.Yellow("⚠️  Generation cancelled")
				return nil
			}
		}

		reporter, err := report.New(cfg.Output.Format, os.Stdout)
		if err != nil {
			return err
		}

		ctx, cancel := commandContext()
		defer cancel()

		store, err := openStore(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer store.Close()

		if cfg.Generation.CreateSchema {
			if err := store.EnsureSchema(ctx); err != nil {
				return err
			}
		}

		run := seeder.NewSeeder(store, cat, seedCfg, reporter).WithSeason(demand)
		if _, err := run.Run(ctx); err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}
		return nil
	},
}

// confirmReplace asks before a replace run clears every table. JSON output is
// meant for unattended runs, so there it demands --force instead of prompting.
func confirmReplace(format string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if format == "json" {
		return false, fmt.Errorf("--policy replace with --output json requires --force")
	}
	return confirm("This will delete every row in the e-commerce tables. Continue?", false), nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return cat, nil
}

func init() {
	flags := generateCmd.Flags()
	flags.Int64("seed", 0, "Random seed (0 picks one from the clock)")
	flags.String("start", "", "First day of order history (YYYY-MM-DD, default two years before --end)")
	flags.String("end", "", "Last day of order history (YYYY-MM-DD, default today)")
	flags.String("policy", "skip", "What to do with populated tables: skip or replace")
	flags.String("granularity", "day", "Order volume granularity: day or block")
	flags.Int("users", 3000, "Number of users")
	flags.Bool("campaign-boost", false, "Raise order volume during campaign windows")
	flags.Bool("behavior", false, "Also generate user behavior events")
	flags.Bool("create-schema", false, "Create missing tables before generating")
	flags.String("catalog", "", "YAML catalog overriding the built-in one")

	bindings := map[string]string{
		"generation.seed":           "seed",
		"generation.start_date":     "start",
		"generation.end_date":       "end",
		"generation.policy":         "policy",
		"generation.granularity":    "granularity",
		"generation.users":          "users",
		"generation.campaign_boost": "campaign-boost",
		"generation.create_schema":  "create-schema",
		"generation.catalog_path":   "catalog",
		"behavior.enabled":          "behavior",
	}
	for key, flag := range bindings {
		viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(generateCmd)
}
