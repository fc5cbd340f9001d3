package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rana718/ecomseed/internal/report"
	"github.com/Rana718/ecomseed/internal/seeder"
	"github.com/Rana718/ecomseed/internal/utils"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all generated rows",
	Long: `
Delete every row from the e-commerce tables, children before parents.
Tables themselves are kept.

⚠️  WARNING: This will permanently delete all data in these tables!

Use --force to skip the confirmation prompt.`,
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

		force, _ := cmd.Flags().GetBool("force")
		if !confirm("Delete all rows from every e-commerce table?", force) {
			color.Yellow("⚠️  Reset cancelled")
			return nil
		}

		order, err := seeder.SchemaGraph().ClearOrder()
		if err != nil {
			return err
		}
		if err := store.Clear(ctx, order); err != nil {
			return err
		}

		color.Green("✅ Cleared %d tables", len(order))
		counts, err := store.Counts(ctx)
		if err != nil {
			return err
		}
		report.PrintCounts(os.Stdout, counts)
		return nil
	},
}

func confirm(message string, force bool) bool {
	in := &utils.InputUtils{In: os.Stdin, Out: os.Stdout}
	return in.AskConfirmation(message, force)
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
