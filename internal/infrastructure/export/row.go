package export

import "stock-snapshot/internal/domain"

// Row is one daily bar as written to export files.
type Row struct {
	Symbol string  `json:"symbol" parquet:"symbol"`
	Date   string  `json:"date" parquet:"date"`
	Open   float64 `json:"open" parquet:"open"`
	High   float64 `json:"high" parquet:"high"`
	Low    float64 `json:"low" parquet:"low"`
	Close  float64 `json:"close" parquet:"close"`
	Volume int64   `json:"volume" parquet:"volume"`
}

func rowsFor(sym domain.Symbol, h []domain.HistoryPoint) []Row {
	rows := make([]Row, 0, len(h))
	for _, p := range h {
		rows = append(rows, Row{
			Symbol: sym.String(),
			Date:   p.Date,
			Open:   p.Open,
			High:   p.High,
			Low:    p.Low,
			Close:  p.Close,
			Volume: p.Volume,
		})
	}
	return rows
}
