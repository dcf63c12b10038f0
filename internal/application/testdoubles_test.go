package application_test

import (
	"context"
	"errors"
	"time"

	"stock-snapshot/internal/domain"
)

var errBoom = errors.New("boom")

type fakeProvider struct {
	quotes     map[domain.Symbol]domain.Quote
	quoteErr   map[domain.Symbol]error
	history    map[domain.Symbol][]domain.HistoryPoint
	historyErr map[domain.Symbol]error
	calls      []string
}

func (f *fakeProvider) FetchQuote(_ context.Context, sym domain.Symbol) (domain.Quote, error) {
	f.calls = append(f.calls, "quote:"+sym.String())
	if err := f.quoteErr[sym]; err != nil {
		return domain.Quote{}, err
	}
	q, ok := f.quotes[sym]
	if !ok {
		return domain.Quote{}, domain.ErrNoQuote
	}
	return q, nil
}

func (f *fakeProvider) FetchDailyHistory(_ context.Context, sym domain.Symbol, _ domain.OutputSize) ([]domain.HistoryPoint, error) {
	f.calls = append(f.calls, "history:"+sym.String())
	if err := f.historyErr[sym]; err != nil {
		return []domain.HistoryPoint{}, err
	}
	return f.history[sym], nil
}

type fakeDemo struct{}

func (fakeDemo) Record(sym domain.Symbol) domain.StockRecord {
	return domain.NewStockRecord(
		domain.Quote{Symbol: sym, Price: 100},
		[]domain.HistoryPoint{{Date: "2024-01-02", Close: 99}},
	)
}

type memSink struct {
	prepared   int
	written    []*domain.Snapshot
	prepareErr error
	writeErr   error
}

func (s *memSink) Prepare(context.Context) error {
	s.prepared++
	return s.prepareErr
}

func (s *memSink) Write(_ context.Context, snap *domain.Snapshot) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.written = append(s.written, snap)
	return nil
}

type fakeMirror struct {
	name string
	err  error
	got  []*domain.Snapshot
}

func (m *fakeMirror) Name() string { return m.name }

func (m *fakeMirror) Mirror(_ context.Context, snap *domain.Snapshot) error {
	m.got = append(m.got, snap)
	return m.err
}

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type fixedID string

func (id fixedID) NewID() string { return string(id) }

type fakeArchive struct {
	quotes  []domain.Quote
	bars    map[domain.Symbol][]domain.HistoryPoint
	runs    []domain.RunRecord
	runIDs  []string
	failOn  string
	failErr error
}

func (a *fakeArchive) UpsertQuote(_ context.Context, runID string, q domain.Quote) error {
	if a.failOn == "quote" {
		return a.failErr
	}
	a.quotes = append(a.quotes, q)
	a.runIDs = append(a.runIDs, runID)
	return nil
}

func (a *fakeArchive) UpsertDailyBars(_ context.Context, sym domain.Symbol, bars []domain.HistoryPoint) error {
	if a.failOn == "bars" {
		return a.failErr
	}
	if a.bars == nil {
		a.bars = map[domain.Symbol][]domain.HistoryPoint{}
	}
	a.bars[sym] = bars
	return nil
}

func (a *fakeArchive) InsertRun(_ context.Context, run domain.RunRecord) error {
	if a.failOn == "run" {
		return a.failErr
	}
	a.runs = append(a.runs, run)
	return nil
}

// countingUoW records how many units of work were opened.
type countingUoW struct{ n int }

func (u *countingUoW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	u.n++
	return fn(ctx)
}
