package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVJournal(t *testing.T) {
	dir := t.TempDir()
	sp := filepath.Join(dir, "signals.csv")
	op := filepath.Join(dir, "orders.csv")

	j, err := NewCSV(sp, op)
	require.NoError(t, err)

	ts := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	require.NoError(t, j.RecordSignal(SignalRecord{
		ID: "sig-1", Symbol: "BTCUSD", Side: "long",
		Entry: 110, Stop: 103.25, Target: 123.5, ATR: 6.75,
		Agreement: 2, Master: "bull", Time: ts,
	}))
	require.NoError(t, j.RecordOrder(OrderRecord{
		ID: "ord-1", SignalID: "sig-1", Symbol: "BTCUSD", Side: "buy",
		Kind: "entry", Quantity: 0.7, Price: 110, Status: "dry_run", Time: ts,
	}))
	require.NoError(t, j.Close())

	sf, err := os.Open(sp)
	require.NoError(t, err)
	defer sf.Close()
	rows, err := csv.NewReader(sf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "signal_id", rows[0][0])
	assert.Equal(t, []string{
		"sig-1", "BTCUSD", "long",
		"110.000000", "103.250000", "123.500000", "6.750000",
		"2", "bull", "2026-08-26T12:00:00Z",
	}, rows[1])

	of, err := os.Open(op)
	require.NoError(t, err)
	defer of.Close()
	rows, err = csv.NewReader(of).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"ord-1", "sig-1", "BTCUSD", "buy", "entry",
		"0.700000", "110.000000", "dry_run", "2026-08-26T12:00:00Z",
	}, rows[1])
}

func TestCSVJournal_BadPath(t *testing.T) {
	dir := t.TempDir()

	_, err := NewCSV(filepath.Join(dir, "missing", "signals.csv"), filepath.Join(dir, "orders.csv"))
	assert.Error(t, err)

	// orders-file failure must not leave the signals file open: the handle is
	// closed on the error path, so a retry with both paths valid succeeds
	_, err = NewCSV(filepath.Join(dir, "signals.csv"), filepath.Join(dir, "missing", "orders.csv"))
	assert.Error(t, err)

	j, err := NewCSV(filepath.Join(dir, "signals.csv"), filepath.Join(dir, "orders.csv"))
	require.NoError(t, err)
	require.NoError(t, j.Close())
}
