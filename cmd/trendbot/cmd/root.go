package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/trendbot/config"
	"github.com/rustyeddy/trendbot/delta"
)

var rootCmd = &cobra.Command{
	Use:   "trendbot",
	Short: "A multi-timeframe trend and price-action trading bot for Delta Exchange",
	Long: `Trendbot scans a watchlist of perpetual contracts for multi-timeframe
trend agreement combined with price-action breaks of structure.

It provides tools for:
  - Running the live/dry-run polling loop
  - Evaluating the watchlist once without placing orders
  - Checking the account wallet balance
  - Printing and initializing configuration

API credentials are read from DELTA_API_KEY and DELTA_API_SECRET
(a .env file in the working directory is honored).`,
}

var cfgPath string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		// Missing .env is fine; the environment may already be populated.
		_ = godotenv.Load()
	})
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "f", "", "path to config file (YAML or JSON)")
}

// loadConfig returns the file-backed config, or defaults when no file is given.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFromFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newClient builds the exchange client from config plus environment credentials.
func newClient(cfg *config.Config) *delta.Client {
	return delta.NewClient(delta.Config{
		BaseURL:   cfg.Exchange.BaseURL,
		APIKey:    os.Getenv("DELTA_API_KEY"),
		APISecret: os.Getenv("DELTA_API_SECRET"),
		Live:      cfg.Exchange.Live,
		Timeout:   time.Duration(cfg.Exchange.TimeoutSeconds) * time.Second,
		Retries:   cfg.Exchange.Retries,
		Backoff:   time.Duration(cfg.Exchange.BackoffMS) * time.Millisecond,
	})
}
