package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stock-snapshot/internal/application"
	"stock-snapshot/internal/domain"
	"stock-snapshot/internal/infrastructure/httpx"
)

const queryPath = "/query"

type Client struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	HTTP    *httpx.Client
}

var _ application.QuoteProvider = (*Client)(nil)

func New(baseURL, apiKey string, timeout time.Duration, hc *httpx.Client) *Client {
	return &Client{BaseURL: baseURL, APIKey: apiKey, Timeout: timeout, HTTP: hc}
}

// FetchQuote requests GLOBAL_QUOTE for symbol. Missing numeric fields come back as zero.
func (c *Client) FetchQuote(ctx context.Context, symbol domain.Symbol) (domain.Quote, error) {
	env, err := c.query(ctx, url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {symbol.String()},
	})
	if err != nil {
		return domain.Quote{}, err
	}

	raw, ok := env.section(keyGlobalQuote)
	if !ok {
		return domain.Quote{}, fmt.Errorf("alphavantage: %s: %w", symbol, domain.ErrNoQuote)
	}
	var gq globalQuote
	if err := json.Unmarshal(raw, &gq); err != nil {
		return domain.Quote{}, fmt.Errorf("alphavantage: %s: %w: %v", symbol, domain.ErrMalformed, err)
	}
	q, err := gq.toDomain(symbol)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("alphavantage: %s: %w", symbol, err)
	}
	return q, nil
}

// FetchDailyHistory requests TIME_SERIES_DAILY and returns the bars ascending by date.
// On any failure the slice is empty, never nil.
func (c *Client) FetchDailyHistory(ctx context.Context, symbol domain.Symbol, size domain.OutputSize) ([]domain.HistoryPoint, error) {
	if size == "" {
		size = domain.OutputSizeCompact
	}
	env, err := c.query(ctx, url.Values{
		"function":   {"TIME_SERIES_DAILY"},
		"symbol":     {symbol.String()},
		"outputsize": {string(size)},
	})
	if err != nil {
		return []domain.HistoryPoint{}, err
	}

	raw, ok := env.section(keyDailySeries)
	if !ok {
		return []domain.HistoryPoint{}, fmt.Errorf("alphavantage: %s history: %w", symbol, domain.ErrNoQuote)
	}
	var series map[string]dailyBar
	if err := json.Unmarshal(raw, &series); err != nil {
		return []domain.HistoryPoint{}, fmt.Errorf("alphavantage: %s history: %w: %v", symbol, domain.ErrMalformed, err)
	}

	out := make([]domain.HistoryPoint, 0, len(series))
	for date, bar := range series {
		hp, err := bar.toDomain(date)
		if err != nil {
			return []domain.HistoryPoint{}, fmt.Errorf("alphavantage: %s history: %w", symbol, err)
		}
		out = append(out, hp)
	}
	domain.SortHistory(out)
	return out, nil
}

func (c *Client) query(ctx context.Context, params url.Values) (envelope, error) {
	if c.BaseURL == "" {
		return nil, errors.New("alphavantage: missing base url")
	}
	u, err := url.Parse(strings.TrimRight(c.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("alphavantage: invalid base url: %w", err)
	}
	u.Path = strings.TrimRight(u.Path, "/") + queryPath
	params.Set("apikey", c.APIKey)
	u.RawQuery = params.Encode()

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("alphavantage: create request: %w", err)
	}

	hc := c.HTTP
	if hc == nil {
		hc = httpx.New(c.Timeout)
	}
	var env envelope
	if err := hc.DoJSON(ctx, req, &env); err != nil {
		if errors.Is(err, httpx.ErrDecode) {
			return nil, fmt.Errorf("alphavantage: %s: %w: %w", params.Get("function"), domain.ErrMalformed, err)
		}
		return nil, fmt.Errorf("alphavantage: %s: %w: %w", params.Get("function"), domain.ErrTransport, err)
	}
	if env == nil {
		return nil, fmt.Errorf("alphavantage: %s: %w: empty body", params.Get("function"), domain.ErrMalformed)
	}
	if err := env.providerError(); err != nil {
		return nil, fmt.Errorf("alphavantage: %s: %w", params.Get("function"), err)
	}
	return env, nil
}
