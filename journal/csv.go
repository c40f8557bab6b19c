package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	signals *csv.Writer
	orders  *csv.Writer
	sf, of  *os.File
}

func NewCSV(signalsPath, ordersPath string) (*CSVJournal, error) {
	sf, err := os.Create(signalsPath)
	if err != nil {
		return nil, err
	}
	of, err := os.Create(ordersPath)
	if err != nil {
		sf.Close()
		return nil, err
	}

	sw := csv.NewWriter(sf)
	ow := csv.NewWriter(of)

	if err := sw.Write([]string{"signal_id", "symbol", "side", "entry", "stop", "target", "atr", "agreement", "master", "time"}); err != nil {
		return nil, err
	}
	if err := ow.Write([]string{"order_id", "signal_id", "symbol", "side", "kind", "quantity", "price", "status", "time"}); err != nil {
		return nil, err
	}

	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}
	ow.Flush()
	if err := ow.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{sw, ow, sf, of}, nil
}

func (j *CSVJournal) RecordSignal(s SignalRecord) error {
	err := j.signals.Write([]string{
		s.ID,
		s.Symbol,
		s.Side,
		f(s.Entry),
		f(s.Stop),
		f(s.Target),
		f(s.ATR),
		strconv.Itoa(s.Agreement),
		s.Master,
		s.Time.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	j.signals.Flush()
	return j.signals.Error()
}

func (j *CSVJournal) RecordOrder(o OrderRecord) error {
	err := j.orders.Write([]string{
		o.ID,
		o.SignalID,
		o.Symbol,
		o.Side,
		o.Kind,
		f(o.Quantity),
		f(o.Price),
		o.Status,
		o.Time.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	j.orders.Flush()
	return j.orders.Error()
}

func (j *CSVJournal) Close() error {
	j.signals.Flush()
	if err := j.signals.Error(); err != nil {
		return err
	}
	j.orders.Flush()
	if err := j.orders.Error(); err != nil {
		return err
	}

	if err := j.sf.Close(); err != nil {
		return err
	}
	return j.of.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
