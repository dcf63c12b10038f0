package application

import (
	"context"
	"time"

	"stock-snapshot/internal/domain"
)

//go:generate mockgen -package=application_test -destination=mock_ports_test.go stock-snapshot/internal/application QuoteProvider,SnapshotSink

// QuoteProvider fetches live data for one symbol. Errors wrap the sentinels in domain.
type QuoteProvider interface {
	FetchQuote(ctx context.Context, symbol domain.Symbol) (domain.Quote, error)
	FetchDailyHistory(ctx context.Context, symbol domain.Symbol, size domain.OutputSize) ([]domain.HistoryPoint, error)
}

// DemoGenerator produces a synthetic record when no credential is configured.
type DemoGenerator interface {
	Record(symbol domain.Symbol) domain.StockRecord
}

// SnapshotSink is the primary destination. A failure here fails the run.
type SnapshotSink interface {
	Prepare(ctx context.Context) error
	Write(ctx context.Context, snap *domain.Snapshot) error
}

// SnapshotMirror receives a copy of a written snapshot. Failures are reported, not fatal.
type SnapshotMirror interface {
	Name() string
	Mirror(ctx context.Context, snap *domain.Snapshot) error
}

// SnapshotArchive is the row-level store behind ArchiveMirror.
type SnapshotArchive interface {
	UpsertQuote(ctx context.Context, runID string, q domain.Quote) error
	UpsertDailyBars(ctx context.Context, symbol domain.Symbol, bars []domain.HistoryPoint) error
	InsertRun(ctx context.Context, run domain.RunRecord) error
}

type Clock interface {
	Now() time.Time
}

type IDGen interface {
	NewID() string
}
