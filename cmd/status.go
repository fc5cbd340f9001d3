package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rana718/ecomseed/internal/report"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts of the e-commerce tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
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

		counts, err := store.Counts(ctx)
		if err != nil {
			return err
		}

		color.Cyan("🔗 %s database", store.Dialect().Name())
		report.PrintCounts(os.Stdout, counts)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
