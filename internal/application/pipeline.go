package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"stock-snapshot/internal/domain"
)

type PipelineConfig struct {
	Symbols     []domain.Symbol
	Demo        bool
	HistorySize domain.OutputSize
}

type Pipeline struct {
	cfg      PipelineConfig
	provider QuoteProvider
	demo     DemoGenerator
	sink     SnapshotSink
	mirrors  []SnapshotMirror
	clock    Clock
	idgen    IDGen
	log      *zap.Logger
}

type Option func(*Pipeline)

func WithClock(c Clock) Option        { return func(p *Pipeline) { p.clock = c } }
func WithIDGen(g IDGen) Option        { return func(p *Pipeline) { p.idgen = g } }
func WithLogger(l *zap.Logger) Option { return func(p *Pipeline) { p.log = l } }

// WithMirrors appends mirrors; nil entries are ignored.
func WithMirrors(ms ...SnapshotMirror) Option {
	return func(p *Pipeline) {
		for _, m := range ms {
			if m != nil {
				p.mirrors = append(p.mirrors, m)
			}
		}
	}
}

func NewPipeline(cfg PipelineConfig, provider QuoteProvider, demo DemoGenerator, sink SnapshotSink, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		provider: provider,
		demo:     demo,
		sink:     sink,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.clock == nil {
		p.clock = realClock{}
	}
	if p.idgen == nil {
		p.idgen = uuidGen{}
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if p.cfg.HistorySize == "" {
		p.cfg.HistorySize = domain.OutputSizeCompact
	}
	return p
}

// RunSummary describes one run. It is returned even when Run fails.
type RunSummary struct {
	RunID    string
	Demo     bool
	Outcomes []domain.FetchOutcome
	Written  bool
	// MirrorErrors is keyed by mirror name.
	MirrorErrors map[string]error
}

func (s RunSummary) count(st domain.FetchStatus) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == st {
			n++
		}
	}
	return n
}

func (s RunSummary) Fetched() int   { return s.count(domain.FetchStatusFetched) }
func (s RunSummary) Synthetic() int { return s.count(domain.FetchStatusSynthetic) }
func (s RunSummary) Skipped() int   { return s.count(domain.FetchStatusSkipped) }

// Run builds one snapshot, writes it to the sink and hands it to every mirror.
// It returns ErrNoData when no symbol produced a record.
func (p *Pipeline) Run(ctx context.Context) (RunSummary, error) {
	snap := domain.NewSnapshot(p.idgen.NewID(), p.cfg.Demo)
	sum := RunSummary{RunID: snap.RunID, Demo: snap.Demo, MirrorErrors: map[string]error{}}
	log := p.log.With(zap.String("run_id", snap.RunID))

	if err := p.sink.Prepare(ctx); err != nil {
		return sum, fmt.Errorf("prepare output: %w", err)
	}

	if p.cfg.Demo {
		log.Info("generating_demo_data", zap.Int("symbols", len(p.cfg.Symbols)))
		for _, sym := range p.cfg.Symbols {
			rec := p.demo.Record(sym)
			snap.Put(sym, rec)
			sum.Outcomes = append(sum.Outcomes, domain.FetchOutcome{
				Symbol: sym, Status: domain.FetchStatusSynthetic, HistoryPoints: len(rec.History),
			})
		}
	} else {
		for _, sym := range p.cfg.Symbols {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			sum.Outcomes = append(sum.Outcomes, p.fetchOne(ctx, log, snap, sym))
		}
	}

	if snap.Len() == 0 {
		log.Error("no_data_fetched", zap.Int("symbols", len(p.cfg.Symbols)))
		p.logSummary(log, sum)
		return sum, ErrNoData
	}

	snap.LastUpdated = p.clock.Now().UTC()
	if err := p.sink.Write(ctx, snap); err != nil {
		return sum, fmt.Errorf("write snapshot: %w", err)
	}
	sum.Written = true
	log.Info("snapshot_written", zap.Int("stocks", snap.Len()), zap.String("last_updated", domain.FormatTimestamp(snap.LastUpdated)))

	for _, m := range p.mirrors {
		if err := m.Mirror(ctx, snap); err != nil {
			sum.MirrorErrors[m.Name()] = err
			log.Warn("mirror_failed", zap.String("mirror", m.Name()), zap.Error(err))
			continue
		}
		log.Debug("mirror_ok", zap.String("mirror", m.Name()))
	}

	p.logSummary(log, sum)
	return sum, nil
}

func (p *Pipeline) fetchOne(ctx context.Context, log *zap.Logger, snap *domain.Snapshot, sym domain.Symbol) domain.FetchOutcome {
	log = log.With(zap.String("symbol", sym.String()))
	log.Info("fetching_symbol")

	q, err := p.provider.FetchQuote(ctx, sym)
	if err != nil {
		if domain.IsProviderReported(err) {
			log.Warn(quoteFailureEvent(err), zap.Error(err))
		} else {
			log.Error(quoteFailureEvent(err), zap.Error(err))
		}
		return domain.FetchOutcome{Symbol: sym, Status: domain.FetchStatusSkipped, Reason: err.Error()}
	}

	h, err := p.provider.FetchDailyHistory(ctx, sym, p.cfg.HistorySize)
	if err != nil {
		log.Warn("history_unavailable", zap.Error(err))
		h = nil
	}
	rec := domain.NewStockRecord(q, h)
	snap.Put(sym, rec)
	log.Info("symbol_fetched", zap.Float64("price", q.Price), zap.Int("history_points", len(rec.History)))
	return domain.FetchOutcome{Symbol: sym, Status: domain.FetchStatusFetched, HistoryPoints: len(rec.History)}
}

func quoteFailureEvent(err error) string {
	switch {
	case errors.Is(err, domain.ErrSymbolNotFound):
		return "symbol_not_found"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrNoQuote):
		return "no_quote_data"
	case errors.Is(err, domain.ErrTransport):
		return "quote_request_failed"
	case errors.Is(err, domain.ErrMalformed):
		return "quote_payload_malformed"
	default:
		return "quote_fetch_failed"
	}
}

func (p *Pipeline) logSummary(log *zap.Logger, sum RunSummary) {
	skipped := make([]string, 0)
	for _, o := range sum.Outcomes {
		if o.Status == domain.FetchStatusSkipped {
			skipped = append(skipped, o.Symbol.String()+": "+o.Reason)
		}
	}
	log.Info("run_summary",
		zap.Bool("demo", sum.Demo),
		zap.Int("fetched", sum.Fetched()),
		zap.Int("synthetic", sum.Synthetic()),
		zap.Int("skipped", sum.Skipped()),
		zap.Strings("skip_reasons", skipped),
		zap.Int("mirror_failures", len(sum.MirrorErrors)),
		zap.Bool("written", sum.Written),
	)
}
