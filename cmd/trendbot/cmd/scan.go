package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/trendbot/bot"
	"github.com/rustyeddy/trendbot/pkg/logx"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Evaluate the watchlist once without placing orders",
	Long: `Scan fetches candle history for every watched symbol, runs the signal
engine and prints any signal it finds. No balance check, no orders.

Example:
  trendbot scan -f trendbot.yaml`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logx.New(cfg.Bot.LogLevel)
	client := newClient(cfg)
	runner := bot.New(cfg, client, client, nil, log)

	found := 0
	for _, symbol := range cfg.Bot.Watchlist {
		sig := runner.Evaluate(cmd.Context(), symbol)
		if sig == nil {
			fmt.Printf("%-10s no signal\n", symbol)
			continue
		}
		found++
		fmt.Printf("%-10s %s entry=%.4f stop=%.4f target=%.4f atr=%.4f agree=%d master=%s\n",
			sig.Symbol, sig.Side, sig.Entry, sig.Stop, sig.Target, sig.ATR, sig.Agreement, sig.Master)
	}
	fmt.Printf("\n%d signal(s) across %d symbol(s)\n", found, len(cfg.Bot.Watchlist))
	return nil
}
