package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the e-commerce tables if they do not exist",
	Long: `
Create product_categories, products, users, marketing_campaigns, traffic_sources,
orders, order_items, order_campaigns and user_behaviors using the DDL of the
configured provider. Existing tables are left untouched.`,
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

		color.Cyan("📋 Creating tables for %s...", store.Dialect().Name())
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		color.Green("✅ Schema is ready")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
