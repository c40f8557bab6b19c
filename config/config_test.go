package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"BTCUSD", "ETHUSD", "SOLUSD"}, cfg.Bot.Watchlist)
	assert.Equal(t, 15, cfg.Bot.SleepMinutes)
	assert.Equal(t, "4h", cfg.Strategy.MacroTimeframe)
	assert.Equal(t, 200, cfg.Strategy.MacroEMAPeriod)
	assert.Equal(t, 2, cfg.Strategy.MinAgreement)
	assert.Equal(t, 0.7, cfg.Risk.RiskUSD)
	assert.Equal(t, 0.95, cfg.Risk.NotionalBuffer)
	assert.False(t, cfg.Exchange.Live)
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yaml")
	data := `
bot:
  watchlist: [BTCUSD]
  sleep_minutes: 5
strategy:
  macro_ema_period: 100
risk:
  risk_usd: 2.5
exchange:
  live: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	// overridden fields
	assert.Equal(t, []string{"BTCUSD"}, cfg.Bot.Watchlist)
	assert.Equal(t, 5, cfg.Bot.SleepMinutes)
	assert.Equal(t, 100, cfg.Strategy.MacroEMAPeriod)
	assert.Equal(t, 2.5, cfg.Risk.RiskUSD)
	assert.True(t, cfg.Exchange.Live)

	// untouched fields keep their defaults
	assert.Equal(t, 14, cfg.Strategy.ATRPeriod)
	assert.Equal(t, "15m", cfg.Strategy.FineTimeframe)
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.json")
	data := `{"bot": {"watchlist": ["ETHUSD"], "sleep_minutes": 30}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ETHUSD"}, cfg.Bot.Watchlist)
	assert.Equal(t, 30, cfg.Bot.SleepMinutes)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yml")

	orig := Default()
	orig.Bot.Watchlist = []string{"SOLUSD"}
	orig.Strategy.RewardRisk = 3.0
	require.NoError(t, orig.SaveToFile(path))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"SOLUSD"}, cfg.Bot.Watchlist)
	assert.Equal(t, 3.0, cfg.Strategy.RewardRisk)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty watchlist", func(c *Config) { c.Bot.Watchlist = nil }},
		{"zero sleep", func(c *Config) { c.Bot.SleepMinutes = 0 }},
		{"missing base url", func(c *Config) { c.Exchange.BaseURL = "" }},
		{"bad macro timeframe", func(c *Config) { c.Strategy.MacroTimeframe = "7m" }},
		{"bad entry timeframe", func(c *Config) { c.Strategy.EntryTimeframes = []string{"15m", "3m"} }},
		{"fast not below slow", func(c *Config) { c.Strategy.FastEMA = 20 }},
		{"agreement above timeframe count", func(c *Config) { c.Strategy.MinAgreement = 5 }},
		{"zero atr period", func(c *Config) { c.Strategy.ATRPeriod = 0 }},
		{"body ratio above one", func(c *Config) { c.Strategy.BOSBodyRatio = 1.5 }},
		{"zero risk", func(c *Config) { c.Risk.RiskUSD = 0 }},
		{"buffer not below one", func(c *Config) { c.Risk.NotionalBuffer = 1.0 }},
		{"bad journal type", func(c *Config) { c.Journal.Type = "postgres" }},
		{"sqlite without path", func(c *Config) { c.Journal.Type = "sqlite"; c.Journal.DBPath = "" }},
		{"metrics without addr", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Addr = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestStrategyParams(t *testing.T) {
	cfg := Default()
	sp := cfg.StrategyParams()

	assert.Equal(t, 200, sp.MacroEMAPeriod)
	assert.Equal(t, 9, sp.FastEMA)
	assert.Equal(t, 20, sp.SlowEMA)
	assert.Equal(t, 0.5, sp.EntryATRMult)
	assert.Equal(t, 20, sp.SwingLookback)
	assert.Equal(t, 50, sp.MinFineBars)
}

func TestRiskParams(t *testing.T) {
	cfg := Default()
	rp := cfg.RiskParams()

	assert.Equal(t, 0.7, rp.RiskUSD)
	assert.Equal(t, 100.0, rp.Leverage)
	assert.Equal(t, 1e-5, rp.QtyStep)
}
