package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rana718/ecomseed/internal/database"
)

var (
	cfgFile string
	Version = "0.3.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════╗",
		"║                                                  ║",
		"║      🛒  E C O M S E E D                         ║",
		"║                                                  ║",
		"║      Seasonal e-commerce data for your DB        ║",
		"║      PostgreSQL • MySQL • SQLite                 ║",
		"║                                                  ║",
		"╚══════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("              ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "ecomseed",
	Short: "Populate an e-commerce database with realistic mock data",
	Long: `
ecomseed fills a relational e-commerce schema with internally consistent mock data:
product categories and products, users, marketing campaigns, traffic sources,
orders with seasonal volume and campaign discounts, and user behavior events.

Database Support:
- PostgreSQL (pgx or lib/pq)
- MySQL
- SQLite`,
	SilenceErrors: true,
	SilenceUsage:  true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("ecomseed version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	color.Red("❌ %v", err)
	switch {
	case errors.Is(err, database.ErrConnectivity):
		color.Cyan("💡 Check that the database is running and DATABASE_URL points at it")
	case errors.Is(err, database.ErrConstraint):
		color.Cyan("💡 Existing rows conflict with generated IDs; rerun with --policy replace")
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ecomseed.config.json)")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Skip confirmations")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Progress output format: text or json")
	viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("output"))

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("ecomseed.config")
	}

	viper.SetEnvPrefix("ECOMSEED")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			color.Yellow("⚠️  Could not read config file: %v", err)
		}
	}
}
