package domain

// StockRecord pairs a symbol's quote with its daily history.
type StockRecord struct {
	Quote   Quote          `json:"quote"`
	History []HistoryPoint `json:"history"`
}

// NewStockRecord keeps History non-nil so it serializes as [] rather than null.
func NewStockRecord(q Quote, h []HistoryPoint) StockRecord {
	if h == nil {
		h = []HistoryPoint{}
	}
	return StockRecord{Quote: q, History: h}
}
