package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const timestampLayout = "2006-01-02T15:04:05.000000"

// FormatTimestamp renders t as a UTC ISO-8601 string with a trailing Z.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout) + "Z"
}

// ParseTimestamp is the inverse of FormatTimestamp. It also accepts RFC 3339.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout+"Z", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Snapshot is the document produced by one run. Symbols holds the keys of Stocks in insertion order.
type Snapshot struct {
	LastUpdated time.Time
	Symbols     []Symbol
	Stocks      map[Symbol]StockRecord

	// RunID and Demo are not part of the document.
	RunID string
	Demo  bool
}

func NewSnapshot(runID string, demo bool) *Snapshot {
	return &Snapshot{
		Symbols: []Symbol{},
		Stocks:  map[Symbol]StockRecord{},
		RunID:   runID,
		Demo:    demo,
	}
}

// Put stores rec under sym. A repeated symbol replaces the earlier record and keeps its position.
func (s *Snapshot) Put(sym Symbol, rec StockRecord) {
	if s.Stocks == nil {
		s.Stocks = map[Symbol]StockRecord{}
	}
	if _, ok := s.Stocks[sym]; !ok {
		s.Symbols = append(s.Symbols, sym)
	}
	s.Stocks[sym] = NewStockRecord(rec.Quote, rec.History)
}

func (s *Snapshot) Len() int { return len(s.Symbols) }

// MarshalJSON writes stocks in the order of Symbols; encoding/json would sort map keys instead.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"lastUpdated":`)
	ts, err := json.Marshal(FormatTimestamp(s.LastUpdated))
	if err != nil {
		return nil, err
	}
	buf.Write(ts)

	symbols := s.Symbols
	if symbols == nil {
		symbols = []Symbol{}
	}
	buf.WriteString(`,"symbols":`)
	syms, err := json.Marshal(symbols)
	if err != nil {
		return nil, err
	}
	buf.Write(syms)

	buf.WriteString(`,"stocks":{`)
	for i, sym := range symbols {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(sym))
		if err != nil {
			return nil, err
		}
		rec := s.Stocks[sym]
		val, err := json.Marshal(NewStockRecord(rec.Quote, rec.History))
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", sym, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		LastUpdated string                 `json:"lastUpdated"`
		Symbols     []Symbol               `json:"symbols"`
		Stocks      map[Symbol]StockRecord `json:"stocks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ts, err := ParseTimestamp(raw.LastUpdated)
	if err != nil {
		return err
	}
	s.LastUpdated = ts
	s.Symbols = raw.Symbols
	s.Stocks = raw.Stocks
	return nil
}
