package domain_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stock-snapshot/internal/domain"
)

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 5, 10, 14, 30, 5, 123456789, time.FixedZone("EST", -5*3600))
	require.Equal(t, "2024-05-10T19:30:05.123456Z", domain.FormatTimestamp(ts))

	back, err := domain.ParseTimestamp("2024-05-10T19:30:05.123456Z")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 5, 10, 19, 30, 5, 123456000, time.UTC), back)

	_, err = domain.ParseTimestamp("2024-05-10T19:30:05+02:00")
	require.NoError(t, err)
	_, err = domain.ParseTimestamp("yesterday")
	require.Error(t, err)
}

func TestSnapshot_PutKeepsFirstPosition(t *testing.T) {
	s := domain.NewSnapshot("r", false)
	s.Put("MSFT", domain.StockRecord{Quote: domain.Quote{Price: 1}})
	s.Put("AAPL", domain.StockRecord{Quote: domain.Quote{Price: 2}})
	s.Put("MSFT", domain.StockRecord{Quote: domain.Quote{Price: 3}})

	require.Equal(t, 2, s.Len())
	require.Equal(t, []domain.Symbol{"MSFT", "AAPL"}, s.Symbols)
	require.Equal(t, 3.0, s.Stocks["MSFT"].Quote.Price)
	require.NotNil(t, s.Stocks["AAPL"].History)
}

func TestSnapshot_JSONShape(t *testing.T) {
	s := domain.NewSnapshot("run-1", true)
	s.LastUpdated = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	s.Put("NVDA", domain.NewStockRecord(domain.Quote{Symbol: "NVDA", Price: 140, Volume: 5}, nil))
	s.Put("AAPL", domain.NewStockRecord(domain.Quote{Symbol: "AAPL"}, []domain.HistoryPoint{{Date: "2024-05-09", Close: 1}}))

	b, err := json.Marshal(s)
	require.NoError(t, err)
	require.JSONEq(t, `{
	  "lastUpdated": "2024-05-10T00:00:00.000000Z",
	  "symbols": ["NVDA", "AAPL"],
	  "stocks": {
	    "NVDA": {
	      "quote": {"symbol": "NVDA", "price": 140, "change": 0, "changePercent": 0, "open": 0, "high": 0, "low": 0, "volume": 5, "prevClose": 0, "latestTradingDay": ""},
	      "history": []
	    },
	    "AAPL": {
	      "quote": {"symbol": "AAPL", "price": 0, "change": 0, "changePercent": 0, "open": 0, "high": 0, "low": 0, "volume": 0, "prevClose": 0, "latestTradingDay": ""},
	      "history": [{"date": "2024-05-09", "open": 0, "high": 0, "low": 0, "close": 1, "volume": 0}]
	    }
	  }
	}`, string(b))

	// stocks keep insertion order, not key order
	require.Less(t, strings.Index(string(b), `"NVDA":{`), strings.Index(string(b), `"AAPL":{`))
	require.NotContains(t, string(b), "run-1")
}

func TestSnapshot_EmptyMarshalsArrays(t *testing.T) {
	b, err := json.Marshal(&domain.Snapshot{})
	require.NoError(t, err)
	require.JSONEq(t, `{"lastUpdated": "0001-01-01T00:00:00.000000Z", "symbols": [], "stocks": {}}`, string(b))
}

func TestSnapshot_RoundTrip(t *testing.T) {
	s := domain.NewSnapshot("", false)
	s.LastUpdated = time.Date(2024, 5, 10, 1, 2, 3, 456000, time.UTC)
	s.Put("TSLA", domain.NewStockRecord(domain.Quote{Symbol: "TSLA", Price: 175.25, ChangePercent: -1.2}, nil))

	b, err := json.Marshal(s)
	require.NoError(t, err)
	var out domain.Snapshot
	require.NoError(t, json.Unmarshal(b, &out))
	require.Equal(t, s.LastUpdated, out.LastUpdated)
	require.Equal(t, s.Symbols, out.Symbols)
	require.Equal(t, s.Stocks, out.Stocks)
}

func TestSortHistory(t *testing.T) {
	h := []domain.HistoryPoint{{Date: "2024-01-03"}, {Date: "2023-12-29"}, {Date: "2024-01-02"}}
	domain.SortHistory(h)
	require.Equal(t, "2023-12-29", h[0].Date)
	require.Equal(t, "2024-01-03", h[2].Date)
}

func TestParseOutputSize(t *testing.T) {
	s, ok := domain.ParseOutputSize("full")
	require.True(t, ok)
	require.Equal(t, domain.OutputSizeFull, s)
	_, ok = domain.ParseOutputSize("FULL")
	require.False(t, ok)
}

func TestNormalizeSymbol(t *testing.T) {
	require.Equal(t, domain.Symbol("BRK.B"), domain.NormalizeSymbol("  brk.b "))
}
