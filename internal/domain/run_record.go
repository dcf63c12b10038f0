package domain

import (
	"encoding/json"
	"time"
)

// RunRecord is the archived form of one run: its identity plus the full document.
type RunRecord struct {
	RunID       string
	LastUpdated time.Time
	Demo        bool
	Symbols     []Symbol
	Document    json.RawMessage
}

func NewRunRecord(snap *Snapshot) (RunRecord, error) {
	doc, err := json.Marshal(snap)
	if err != nil {
		return RunRecord{}, err
	}
	syms := make([]Symbol, len(snap.Symbols))
	copy(syms, snap.Symbols)
	return RunRecord{
		RunID:       snap.RunID,
		LastUpdated: snap.LastUpdated.UTC(),
		Demo:        snap.Demo,
		Symbols:     syms,
		Document:    doc,
	}, nil
}
