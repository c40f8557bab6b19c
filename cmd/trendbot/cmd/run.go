package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/trendbot/bot"
	"github.com/rustyeddy/trendbot/journal"
	"github.com/rustyeddy/trendbot/metrics"
	"github.com/rustyeddy/trendbot/pkg/logx"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the polling evaluation loop",
	Long: `Run the bot: evaluate the watchlist every sleep interval, journal any
signals, and submit orders for the first accepted signal per cycle.

Orders are only sent to the exchange when exchange.live is true in the
config; otherwise every order is a logged dry run.

Example:
  trendbot run -f trendbot.yaml`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logx.New(cfg.Bot.LogLevel)
	if cfg.Exchange.Live {
		log.Info().Msg("multi-timeframe price action bot (LIVE)")
	} else {
		log.Info().Msg("multi-timeframe price action bot (DRY RUN)")
	}

	var j journal.Journal
	switch cfg.Journal.Type {
	case "csv":
		j, err = journal.NewCSV(cfg.Journal.SignalsFile, cfg.Journal.OrdersFile)
	case "sqlite":
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	default:
		j = journal.Nop{}
	}
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	if cfg.Metrics.Enabled {
		srv := metrics.Serve(cfg.Metrics.Addr)
		defer srv.Close()
		log.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics listening")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := newClient(cfg)
	runner := bot.New(cfg, client, client, j, log)

	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	log.Info().Msg("shutting down")
	return nil
}
