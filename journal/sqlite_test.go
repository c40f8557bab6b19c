package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteJournal(t *testing.T) {
	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer j.Close()

	ts := time.Now().UTC()

	require.NoError(t, j.RecordSignal(SignalRecord{
		ID: "sig-1", Symbol: "ETHUSD", Side: "short",
		Entry: 90, Stop: 97, Target: 76, ATR: 7,
		Agreement: 3, Master: "bear", Time: ts,
	}))
	for _, kind := range []string{"entry", "take_profit", "stop_loss"} {
		require.NoError(t, j.RecordOrder(OrderRecord{
			ID: "ord-" + kind, SignalID: "sig-1", Symbol: "ETHUSD",
			Side: "sell", Kind: kind, Quantity: 0.5, Price: 90,
			Status: "submitted", Time: ts,
		}))
	}

	var symbol string
	var entry float64
	row := j.db.QueryRow(`SELECT symbol, entry FROM signals WHERE signal_id = ?`, "sig-1")
	require.NoError(t, row.Scan(&symbol, &entry))
	assert.Equal(t, "ETHUSD", symbol)
	assert.Equal(t, 90.0, entry)

	var count int
	row = j.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE signal_id = ?`, "sig-1")
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 3, count)
}

func TestSQLiteJournal_SchemaIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, j.RecordSignal(SignalRecord{ID: "a", Symbol: "BTCUSD", Time: time.Now()}))
	require.NoError(t, j.Close())

	// reopening an existing database must not fail or drop rows
	j, err = NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	var count int
	require.NoError(t, j.db.QueryRow(`SELECT COUNT(*) FROM signals`).Scan(&count))
	assert.Equal(t, 1, count)
}
