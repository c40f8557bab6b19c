// Package journal records emitted signals and submitted orders for audit.
// It is an append-only boundary log: nothing in the signal engine reads it
// back, and each evaluation cycle stays stateless.
package journal

import "time"

// SignalRecord is one emitted trade signal.
type SignalRecord struct {
	ID        string
	Symbol    string
	Side      string
	Entry     float64
	Stop      float64
	Target    float64
	ATR       float64
	Agreement int
	Master    string
	Time      time.Time
}

// OrderRecord is one order submission outcome, linked to its signal.
type OrderRecord struct {
	ID       string
	SignalID string
	Symbol   string
	Side     string
	Kind     string // "entry", "take_profit", "stop_loss"
	Quantity float64
	Price    float64
	Status   string
	Time     time.Time
}

type Journal interface {
	RecordSignal(SignalRecord) error
	RecordOrder(OrderRecord) error
	Close() error
}

// Nop discards all records. Used when journaling is disabled.
type Nop struct{}

func (Nop) RecordSignal(SignalRecord) error { return nil }
func (Nop) RecordOrder(OrderRecord) error   { return nil }
func (Nop) Close() error                    { return nil }
