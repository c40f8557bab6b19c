// Package bot owns the evaluation loop: it feeds candle series into the
// signal engine for every watched symbol, sizes the first accepted signal and
// hands the orders to the exchange. All engine calls are pure; this package
// is where fetch failures become "skip this symbol this cycle".
package bot

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/trendbot/config"
	"github.com/rustyeddy/trendbot/delta"
	"github.com/rustyeddy/trendbot/journal"
	"github.com/rustyeddy/trendbot/market"
	"github.com/rustyeddy/trendbot/metrics"
	"github.com/rustyeddy/trendbot/pkg/id"
	"github.com/rustyeddy/trendbot/risk"
	"github.com/rustyeddy/trendbot/strategy"
)

// MarketData supplies candle history. The production implementation is
// *delta.Client; tests substitute canned series.
type MarketData interface {
	Candles(ctx context.Context, symbol string, tf market.Timeframe, limit int) (market.Series, error)
}

// Broker performs the stateful exchange calls a signal leads to.
type Broker interface {
	Products(ctx context.Context, watch []string) (map[string]int, error)
	Tickers(ctx context.Context) (map[string]float64, error)
	BalanceUSD(ctx context.Context) (float64, error)
	HasOpenPosition(ctx context.Context, productID int) (bool, error)
	PlaceMarket(ctx context.Context, productID int, side string, qty, leverage float64) (delta.OrderResult, error)
	PlaceLimitReduce(ctx context.Context, productID int, side string, qty, limitPrice float64) (delta.OrderResult, error)
	PlaceStopMarket(ctx context.Context, productID int, side string, qty, stopPrice float64) (delta.OrderResult, error)
}

// Runner evaluates the watchlist once per cycle.
//
// Selection policy: symbols are scanned in configured watchlist order and the
// first symbol that produces a sized, accepted signal ends the cycle. This is
// a deliberate one-trade-per-cycle policy, not incidental loop control.
type Runner struct {
	cfg      *config.Config
	strat    strategy.Config
	sizing   risk.Params
	feed     MarketData
	broker   Broker
	journal  journal.Journal
	log      zerolog.Logger
	products map[string]int
}

// New builds a Runner. A nil journal disables journaling.
func New(cfg *config.Config, feed MarketData, broker Broker, jrnl journal.Journal, log zerolog.Logger) *Runner {
	if jrnl == nil {
		jrnl = journal.Nop{}
	}
	return &Runner{
		cfg:     cfg,
		strat:   cfg.StrategyParams(),
		sizing:  cfg.RiskParams(),
		feed:    feed,
		broker:  broker,
		journal: jrnl,
		log:     log,
	}
}

// Run resolves the product map, then evaluates the watchlist every sleep
// interval until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	products, err := r.broker.Products(ctx, r.cfg.Bot.Watchlist)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return errNoProducts
	}
	r.products = products
	r.log.Info().Interface("products", products).Msg("product map resolved")

	interval := time.Duration(r.cfg.Bot.SleepMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := r.Cycle(ctx); err != nil {
			r.log.Warn().Err(err).Msg("cycle failed")
		}
		r.log.Info().Dur("sleep", interval).Msg("cycle complete")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Cycle evaluates every watched symbol once, placing orders for at most one
// signal. Per-symbol data problems are skips, not failures.
func (r *Runner) Cycle(ctx context.Context) error {
	metrics.CyclesTotal.Inc()

	balance, err := r.broker.BalanceUSD(ctx)
	if err != nil {
		return err
	}
	r.log.Info().Float64("balance", balance).Msg("cycle start")
	if balance < r.cfg.Bot.MinBalanceUSD {
		r.log.Warn().Float64("balance", balance).Msg("balance below minimum, skipping cycle")
		return nil
	}

	// Best effort: the mark price is scan context, not a signal input.
	prices, err := r.broker.Tickers(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("ticker fetch failed")
	}

	for _, symbol := range r.cfg.Bot.Watchlist {
		metrics.SymbolsScanned.WithLabelValues(symbol).Inc()
		ev := r.log.Debug().Str("symbol", symbol)
		if px, ok := prices[symbol]; ok {
			ev = ev.Float64("mark", px)
		}
		ev.Msg("scanning")

		sig := r.Evaluate(ctx, symbol)
		if sig == nil {
			continue
		}
		metrics.SignalsTotal.WithLabelValues(symbol, sig.Side.String()).Inc()
		r.log.Info().
			Str("symbol", sig.Symbol).
			Str("side", sig.Side.String()).
			Float64("entry", sig.Entry).
			Float64("stop", sig.Stop).
			Float64("target", sig.Target).
			Float64("atr", sig.ATR).
			Int("agreement", sig.Agreement).
			Str("master", sig.Master.String()).
			Msg("signal")

		if r.place(ctx, sig, balance) {
			// one trade per cycle; see Runner doc
			break
		}
	}
	return nil
}

// Evaluate fetches the multi-timeframe series for one symbol and runs the
// signal engine. Any unavailable series yields no signal: a failed voting
// timeframe simply does not agree, a failed macro or fine fetch skips the
// symbol for this cycle.
func (r *Runner) Evaluate(ctx context.Context, symbol string) *strategy.Signal {
	sc := r.cfg.Strategy

	macro, err := r.feed.Candles(ctx, symbol, market.Timeframe(sc.MacroTimeframe), sc.MacroBars)
	if err != nil {
		r.unavailable(symbol, err)
		return nil
	}

	entry := make(map[market.Timeframe]market.Series, len(sc.EntryTimeframes))
	for _, tf := range sc.EntryTimeframes {
		s, err := r.feed.Candles(ctx, symbol, market.Timeframe(tf), sc.EntryBars)
		if err != nil {
			r.unavailable(symbol, err)
			continue
		}
		entry[market.Timeframe(tf)] = s
	}

	fine, err := r.feed.Candles(ctx, symbol, market.Timeframe(sc.FineTimeframe), sc.FineBars)
	if err != nil {
		r.unavailable(symbol, err)
		return nil
	}

	return r.strat.Evaluate(symbol, strategy.MultiTF{Macro: macro, Entry: entry, Fine: fine})
}

// place sizes the signal and submits entry, take-profit and stop-loss orders.
// It reports whether an entry was actually submitted.
func (r *Runner) place(ctx context.Context, sig *strategy.Signal, balance float64) bool {
	productID, ok := r.products[sig.Symbol]
	if !ok {
		r.log.Warn().Str("symbol", sig.Symbol).Msg("no product id, skipping")
		return false
	}

	open, err := r.broker.HasOpenPosition(ctx, productID)
	if err != nil {
		r.log.Warn().Err(err).Str("symbol", sig.Symbol).Msg("position check failed, skipping")
		return false
	}
	if open {
		r.log.Info().Str("symbol", sig.Symbol).Msg("existing position, skipping")
		return false
	}

	sized := risk.Size(risk.Inputs{
		Entry:   sig.Entry,
		Stop:    sig.Stop,
		Target:  sig.Target,
		Balance: balance,
	}, r.sizing)
	if sized.Quantity <= 0 {
		r.log.Info().Str("symbol", sig.Symbol).Msg("sizing rejected trade")
		return false
	}

	signalID := id.New()
	r.recordSignal(signalID, sig)

	side := orderSide(sig.Side)
	reduce := reduceSide(sig.Side)

	entryRes, err := r.broker.PlaceMarket(ctx, productID, side, sized.Quantity, r.cfg.Risk.Leverage)
	r.recordOrder(signalID, sig, "entry", side, sized.Quantity, sig.Entry, entryRes, err)
	if err != nil || !entryRes.Success {
		r.log.Error().Err(err).Str("symbol", sig.Symbol).Msg("entry order failed")
		return false
	}
	metrics.OrdersTotal.WithLabelValues(sig.Symbol, side).Inc()

	tpRes, err := r.broker.PlaceLimitReduce(ctx, productID, reduce, sized.Quantity, sized.Target)
	r.recordOrder(signalID, sig, "take_profit", reduce, sized.Quantity, sized.Target, tpRes, err)
	if err != nil {
		r.log.Error().Err(err).Str("symbol", sig.Symbol).Msg("take-profit order failed")
	}

	slRes, err := r.broker.PlaceStopMarket(ctx, productID, reduce, sized.Quantity, sig.Stop)
	r.recordOrder(signalID, sig, "stop_loss", reduce, sized.Quantity, sig.Stop, slRes, err)
	if err != nil {
		r.log.Error().Err(err).Str("symbol", sig.Symbol).Msg("stop-loss order failed")
	}

	r.log.Info().
		Str("symbol", sig.Symbol).
		Str("side", side).
		Float64("qty", sized.Quantity).
		Float64("target", sized.Target).
		Bool("dry_run", entryRes.DryRun).
		Msg("orders placed")
	return true
}

func (r *Runner) unavailable(symbol string, err error) {
	metrics.FetchErrors.WithLabelValues(symbol).Inc()
	r.log.Debug().Err(err).Str("symbol", symbol).Msg("data unavailable")
}

func (r *Runner) recordSignal(signalID string, sig *strategy.Signal) {
	err := r.journal.RecordSignal(journal.SignalRecord{
		ID:        signalID,
		Symbol:    sig.Symbol,
		Side:      sig.Side.String(),
		Entry:     sig.Entry,
		Stop:      sig.Stop,
		Target:    sig.Target,
		ATR:       sig.ATR,
		Agreement: sig.Agreement,
		Master:    sig.Master.String(),
		Time:      time.Now().UTC(),
	})
	if err != nil {
		r.log.Warn().Err(err).Msg("journal signal failed")
	}
}

func (r *Runner) recordOrder(signalID string, sig *strategy.Signal, kind, side string, qty, price float64, res delta.OrderResult, orderErr error) {
	status := "submitted"
	switch {
	case orderErr != nil:
		status = "failed"
	case res.DryRun:
		status = "dry_run"
	}
	err := r.journal.RecordOrder(journal.OrderRecord{
		ID:       id.New(),
		SignalID: signalID,
		Symbol:   sig.Symbol,
		Side:     side,
		Kind:     kind,
		Quantity: qty,
		Price:    price,
		Status:   status,
		Time:     time.Now().UTC(),
	})
	if err != nil {
		r.log.Warn().Err(err).Msg("journal order failed")
	}
}

func orderSide(s strategy.Side) string {
	if s == strategy.Short {
		return "sell"
	}
	return "buy"
}

func reduceSide(s strategy.Side) string {
	if s == strategy.Short {
		return "buy"
	}
	return "sell"
}
