package alphavantage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"stock-snapshot/internal/domain"
)

const (
	keyErrorMessage = "Error Message"
	keyNote         = "Note"
	keyInformation  = "Information"
	keyGlobalQuote  = "Global Quote"
	keyDailySeries  = "Time Series (Daily)"
)

// envelope is the top level of every response; the data section name depends on the function.
type envelope map[string]json.RawMessage

type globalQuote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}

type dailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// providerError maps the notice fields the provider puts in a 2xx body to sentinel errors.
func (e envelope) providerError() error {
	if msg := e.text(keyErrorMessage); msg != "" {
		return fmt.Errorf("%w: %s", domain.ErrSymbolNotFound, msg)
	}
	if msg := e.text(keyNote); msg != "" {
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, msg)
	}
	if msg := e.text(keyInformation); msg != "" {
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, msg)
	}
	return nil
}

func (e envelope) text(key string) string {
	raw, ok := e[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		// a non-string notice still counts as present
		return strings.TrimSpace(string(raw))
	}
	return strings.TrimSpace(s)
}

// section returns the named object, or ok=false if it is absent, null or empty.
func (e envelope) section(key string) (json.RawMessage, bool) {
	raw, ok := e[key]
	if !ok {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		// not an object; the caller's decode reports it as malformed
		return raw, true
	}
	if len(fields) == 0 {
		return nil, false
	}
	return raw, true
}

func (g globalQuote) toDomain(requested domain.Symbol) (domain.Quote, error) {
	var p fieldParser
	q := domain.Quote{
		Symbol:           requested,
		Open:             p.parseFloat("02. open", g.Open),
		High:             p.parseFloat("03. high", g.High),
		Low:              p.parseFloat("04. low", g.Low),
		Price:            p.parseFloat("05. price", g.Price),
		Volume:           p.parseInt("06. volume", g.Volume),
		LatestTradingDay: strings.TrimSpace(g.LatestTradingDay),
		PrevClose:        p.parseFloat("08. previous close", g.PreviousClose),
		Change:           p.parseFloat("09. change", g.Change),
		ChangePercent:    p.parseFloat("10. change percent", strings.TrimSuffix(strings.TrimSpace(g.ChangePercent), "%")),
	}
	if s := strings.TrimSpace(g.Symbol); s != "" {
		q.Symbol = domain.Symbol(s)
	}
	if p.err != nil {
		return domain.Quote{}, p.err
	}
	return q, nil
}

func (b dailyBar) toDomain(date string) (domain.HistoryPoint, error) {
	var p fieldParser
	hp := domain.HistoryPoint{
		Date:   date,
		Open:   p.parseFloat("1. open", b.Open),
		High:   p.parseFloat("2. high", b.High),
		Low:    p.parseFloat("3. low", b.Low),
		Close:  p.parseFloat("4. close", b.Close),
		Volume: p.parseInt("5. volume", b.Volume),
	}
	if p.err != nil {
		return domain.HistoryPoint{}, fmt.Errorf("%s: %w", date, p.err)
	}
	return hp, nil
}

// fieldParser keeps the first conversion error. Empty values parse as zero.
type fieldParser struct {
	err error
}

func (p *fieldParser) parseFloat(key, raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = fmt.Errorf("%w: field %q: %q", domain.ErrMalformed, key, raw)
		return 0
	}
	return v
}

func (p *fieldParser) parseInt(key, raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || p.err != nil {
		return 0
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = fmt.Errorf("%w: field %q: %q", domain.ErrMalformed, key, raw)
		return 0
	}
	return int64(f)
}
