package domain

import "sort"

// HistoryPoint is one daily bar.
type HistoryPoint struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// SortHistory orders points ascending by their YYYY-MM-DD date string.
func SortHistory(h []HistoryPoint) {
	sort.SliceStable(h, func(i, j int) bool { return h[i].Date < h[j].Date })
}

// OutputSize selects the provider's daily history window.
type OutputSize string

const (
	OutputSizeCompact OutputSize = "compact" // ~100 most recent sessions
	OutputSizeFull    OutputSize = "full"    // 20+ years
)

func ParseOutputSize(s string) (OutputSize, bool) {
	switch OutputSize(s) {
	case OutputSizeCompact, OutputSizeFull:
		return OutputSize(s), true
	default:
		return "", false
	}
}
