// Package config exposes the complete bot configuration as strongly typed
// structs loadable from YAML or JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/trendbot/market"
	"github.com/rustyeddy/trendbot/risk"
	"github.com/rustyeddy/trendbot/strategy"
)

// Config collects every configuration leaf for easy marshaling.
type Config struct {
	Bot      BotConfig      `json:"bot" yaml:"bot"`
	Exchange ExchangeConfig `json:"exchange" yaml:"exchange"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Risk     RiskConfig     `json:"risk" yaml:"risk"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`
}

// BotConfig contains scheduler-level parameters.
type BotConfig struct {
	Watchlist     []string `json:"watchlist" yaml:"watchlist"`
	SleepMinutes  int      `json:"sleep_minutes" yaml:"sleep_minutes"`
	MinBalanceUSD float64  `json:"min_balance_usd" yaml:"min_balance_usd"`
	LogLevel      string   `json:"log_level" yaml:"log_level"`
}

// ExchangeConfig describes connectivity to Delta Exchange. API credentials
// are deliberately not here; they come from the environment.
type ExchangeConfig struct {
	BaseURL        string `json:"base_url" yaml:"base_url"`
	Live           bool   `json:"live" yaml:"live"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	Retries        int    `json:"retries" yaml:"retries"`
	BackoffMS      int    `json:"backoff_ms" yaml:"backoff_ms"`
}

// StrategyConfig contains the signal engine parameters.
type StrategyConfig struct {
	MacroTimeframe  string   `json:"macro_timeframe" yaml:"macro_timeframe"`
	MacroBars       int      `json:"macro_bars" yaml:"macro_bars"`
	MacroEMAPeriod  int      `json:"macro_ema_period" yaml:"macro_ema_period"`
	EntryTimeframes []string `json:"entry_timeframes" yaml:"entry_timeframes"`
	EntryBars       int      `json:"entry_bars" yaml:"entry_bars"`
	FastEMA         int      `json:"fast_ema" yaml:"fast_ema"`
	SlowEMA         int      `json:"slow_ema" yaml:"slow_ema"`
	MinAgreement    int      `json:"min_agreement" yaml:"min_agreement"`
	FineTimeframe   string   `json:"fine_timeframe" yaml:"fine_timeframe"`
	FineBars        int      `json:"fine_bars" yaml:"fine_bars"`
	ATRPeriod       int      `json:"atr_period" yaml:"atr_period"`
	EntryATRMult    float64  `json:"entry_atr_mult" yaml:"entry_atr_mult"`
	StopATRMult     float64  `json:"stop_atr_mult" yaml:"stop_atr_mult"`
	RewardRisk      float64  `json:"reward_risk" yaml:"reward_risk"`
	SwingLookback   int      `json:"swing_lookback" yaml:"swing_lookback"`
	BOSBodyRatio    float64  `json:"bos_body_ratio" yaml:"bos_body_ratio"`
}

// RiskConfig contains position sizing parameters.
type RiskConfig struct {
	RiskUSD          float64 `json:"risk_usd" yaml:"risk_usd"`
	Leverage         float64 `json:"leverage" yaml:"leverage"`
	NotionalBuffer   float64 `json:"notional_buffer" yaml:"notional_buffer"`
	MinTakeProfitUSD float64 `json:"min_take_profit_usd" yaml:"min_take_profit_usd"`
	QtyStep          float64 `json:"qty_step" yaml:"qty_step"`
}

// JournalConfig contains signal/order journaling parameters.
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "csv" or "sqlite"
	SignalsFile string `json:"signals_file,omitempty" yaml:"signals_file,omitempty"`
	OrdersFile  string `json:"orders_file,omitempty" yaml:"orders_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Addr    string `json:"addr" yaml:"addr"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Bot.Watchlist) == 0 {
		return fmt.Errorf("bot.watchlist is required")
	}
	if c.Bot.SleepMinutes <= 0 {
		return fmt.Errorf("bot.sleep_minutes must be positive")
	}
	if c.Exchange.BaseURL == "" {
		return fmt.Errorf("exchange.base_url is required")
	}
	if !market.Timeframe(c.Strategy.MacroTimeframe).Valid() {
		return fmt.Errorf("unknown macro timeframe: %s", c.Strategy.MacroTimeframe)
	}
	if !market.Timeframe(c.Strategy.FineTimeframe).Valid() {
		return fmt.Errorf("unknown fine timeframe: %s", c.Strategy.FineTimeframe)
	}
	if len(c.Strategy.EntryTimeframes) == 0 {
		return fmt.Errorf("strategy.entry_timeframes is required")
	}
	for _, tf := range c.Strategy.EntryTimeframes {
		if !market.Timeframe(tf).Valid() {
			return fmt.Errorf("unknown entry timeframe: %s", tf)
		}
	}
	if c.Strategy.MacroEMAPeriod <= 0 || c.Strategy.FastEMA <= 0 || c.Strategy.SlowEMA <= 0 {
		return fmt.Errorf("strategy EMA periods must be positive")
	}
	if c.Strategy.FastEMA >= c.Strategy.SlowEMA {
		return fmt.Errorf("strategy.fast_ema must be less than slow_ema")
	}
	if c.Strategy.MinAgreement <= 0 || c.Strategy.MinAgreement > len(c.Strategy.EntryTimeframes) {
		return fmt.Errorf("strategy.min_agreement must be between 1 and %d", len(c.Strategy.EntryTimeframes))
	}
	if c.Strategy.ATRPeriod <= 0 {
		return fmt.Errorf("strategy.atr_period must be positive")
	}
	if c.Strategy.SwingLookback <= 0 {
		return fmt.Errorf("strategy.swing_lookback must be positive")
	}
	if c.Strategy.BOSBodyRatio <= 0 || c.Strategy.BOSBodyRatio > 1 {
		return fmt.Errorf("strategy.bos_body_ratio must be in (0, 1]")
	}
	if c.Strategy.RewardRisk <= 0 {
		return fmt.Errorf("strategy.reward_risk must be positive")
	}
	if c.Risk.RiskUSD <= 0 {
		return fmt.Errorf("risk.risk_usd must be positive")
	}
	if c.Risk.Leverage <= 0 {
		return fmt.Errorf("risk.leverage must be positive")
	}
	if c.Risk.NotionalBuffer <= 0 || c.Risk.NotionalBuffer >= 1 {
		return fmt.Errorf("risk.notional_buffer must be in (0, 1)")
	}
	if c.Risk.QtyStep <= 0 {
		return fmt.Errorf("risk.qty_step must be positive")
	}
	if c.Journal.Type != "" && c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && (c.Journal.SignalsFile == "" || c.Journal.OrdersFile == "") {
		return fmt.Errorf("journal signals_file and orders_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr required when metrics enabled")
	}
	return nil
}

// StrategyParams converts the strategy leaf into the signal engine config.
func (c *Config) StrategyParams() strategy.Config {
	return strategy.Config{
		MacroEMAPeriod: c.Strategy.MacroEMAPeriod,
		FastEMA:        c.Strategy.FastEMA,
		SlowEMA:        c.Strategy.SlowEMA,
		MinAgreement:   c.Strategy.MinAgreement,
		ATRPeriod:      c.Strategy.ATRPeriod,
		EntryATRMult:   c.Strategy.EntryATRMult,
		StopATRMult:    c.Strategy.StopATRMult,
		RewardRisk:     c.Strategy.RewardRisk,
		SwingLookback:  c.Strategy.SwingLookback,
		BOSBodyRatio:   c.Strategy.BOSBodyRatio,
		MinFineBars:    50,
	}
}

// RiskParams converts the risk leaf into sizing parameters.
func (c *Config) RiskParams() risk.Params {
	return risk.Params{
		RiskUSD:          c.Risk.RiskUSD,
		Leverage:         c.Risk.Leverage,
		NotionalBuffer:   c.Risk.NotionalBuffer,
		MinTakeProfitUSD: c.Risk.MinTakeProfitUSD,
		QtyStep:          c.Risk.QtyStep,
	}
}

// Default returns a configuration with the production defaults.
func Default() *Config {
	return &Config{
		Bot: BotConfig{
			Watchlist:     []string{"BTCUSD", "ETHUSD", "SOLUSD"},
			SleepMinutes:  15,
			MinBalanceUSD: 0.01,
			LogLevel:      "info",
		},
		Exchange: ExchangeConfig{
			BaseURL:        "https://api.india.delta.exchange",
			Live:           false,
			TimeoutSeconds: 20,
			Retries:        2,
			BackoffMS:      600,
		},
		Strategy: StrategyConfig{
			MacroTimeframe:  "4h",
			MacroBars:       250,
			MacroEMAPeriod:  200,
			EntryTimeframes: []string{"15m", "30m", "1h", "2h"},
			EntryBars:       160,
			FastEMA:         9,
			SlowEMA:         20,
			MinAgreement:    2,
			FineTimeframe:   "15m",
			FineBars:        300,
			ATRPeriod:       14,
			EntryATRMult:    0.5,
			StopATRMult:     1.0,
			RewardRisk:      2.0,
			SwingLookback:   20,
			BOSBodyRatio:    0.6,
		},
		Risk: RiskConfig{
			RiskUSD:          0.7,
			Leverage:         100,
			NotionalBuffer:   0.95,
			MinTakeProfitUSD: 1.0,
			QtyStep:          1e-5,
		},
		Journal: JournalConfig{
			Type:        "csv",
			SignalsFile: "./signals.csv",
			OrdersFile:  "./orders.csv",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
	}
}
