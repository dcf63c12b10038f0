package domain

// Quote is the point-in-time record for one symbol as written to the snapshot.
type Quote struct {
	Symbol           Symbol  `json:"symbol"`
	Price            float64 `json:"price"`
	Change           float64 `json:"change"`
	ChangePercent    float64 `json:"changePercent"`
	Open             float64 `json:"open"`
	High             float64 `json:"high"`
	Low              float64 `json:"low"`
	Volume           int64   `json:"volume"`
	PrevClose        float64 `json:"prevClose"`
	LatestTradingDay string  `json:"latestTradingDay"`
}
