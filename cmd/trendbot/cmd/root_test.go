package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/trendbot/config"
)

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfgPath = ""
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"BTCUSD", "ETHUSD", "SOLUSD"}, cfg.Bot.Watchlist)
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bot:\n  sleep_minutes: 5\n"), 0644))

	cfgPath = path
	defer func() { cfgPath = "" }()

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Bot.SleepMinutes)
}

func TestNewClient_DryRunByDefault(t *testing.T) {
	client := newClient(config.Default())
	assert.False(t, client.Live())
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "scan", "balance", "config", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
