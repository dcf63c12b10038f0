package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"stock-snapshot/internal/application"
	"stock-snapshot/internal/domain"
	"stock-snapshot/internal/infrastructure/logx"
)

const dayLayout = "2006-01-02"

type ArchiveRepo struct{ db *DB }

var _ application.SnapshotArchive = (*ArchiveRepo)(nil)

func NewArchiveRepo(db *DB) *ArchiveRepo { return &ArchiveRepo{db: db} }

func (r *ArchiveRepo) UpsertQuote(ctx context.Context, runID string, q domain.Quote) error {
	id, err := uuid.Parse(runID)
	if err != nil {
		return fmt.Errorf("run id %q: %w", runID, err)
	}
	const up = `
        INSERT INTO stock_quotes(symbol, price, change, change_percent, open, high, low, volume, prev_close, latest_trading_day, run_id, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
        ON CONFLICT (symbol) DO UPDATE
          SET price=EXCLUDED.price, change=EXCLUDED.change, change_percent=EXCLUDED.change_percent,
              open=EXCLUDED.open, high=EXCLUDED.high, low=EXCLUDED.low, volume=EXCLUDED.volume,
              prev_close=EXCLUDED.prev_close, latest_trading_day=EXCLUDED.latest_trading_day,
              run_id=EXCLUDED.run_id, updated_at=EXCLUDED.updated_at`
	log := logx.L().With(
		zap.String("repo", "archive"),
		zap.String("operation", "UpsertQuote"),
		zap.String("symbol", q.Symbol.String()),
		zap.String("run_id", runID),
	)
	_, err = r.db.conn(ctx).Exec(ctx, up,
		q.Symbol.String(), q.Price, q.Change, q.ChangePercent, q.Open, q.High, q.Low,
		q.Volume, q.PrevClose, q.LatestTradingDay, id)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return err
	}
	log.Debug("sql.exec_success")
	return nil
}

// UpsertDailyBars sends all bars in one batch. Existing days are overwritten.
func (r *ArchiveRepo) UpsertDailyBars(ctx context.Context, symbol domain.Symbol, bars []domain.HistoryPoint) error {
	if len(bars) == 0 {
		return nil
	}
	const up = `
        INSERT INTO stock_daily_bars(symbol, day, open, high, low, close, volume)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (symbol, day) DO UPDATE
          SET open=EXCLUDED.open, high=EXCLUDED.high, low=EXCLUDED.low,
              close=EXCLUDED.close, volume=EXCLUDED.volume`
	batch := &pgx.Batch{}
	for _, b := range bars {
		day, err := time.Parse(dayLayout, b.Date)
		if err != nil {
			return fmt.Errorf("bar date %q: %w", b.Date, err)
		}
		batch.Queue(up, symbol.String(), day, b.Open, b.High, b.Low, b.Close, b.Volume)
	}
	if err := r.db.conn(ctx).SendBatch(ctx, batch).Close(); err != nil {
		logx.L().Error("sql.batch_failed",
			zap.String("repo", "archive"),
			zap.String("operation", "UpsertDailyBars"),
			zap.String("symbol", symbol.String()),
			zap.Int("bars", len(bars)),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *ArchiveRepo) InsertRun(ctx context.Context, run domain.RunRecord) error {
	id, err := uuid.Parse(run.RunID)
	if err != nil {
		return fmt.Errorf("run id %q: %w", run.RunID, err)
	}
	syms := make([]string, len(run.Symbols))
	for i, s := range run.Symbols {
		syms[i] = s.String()
	}
	const ins = `
        INSERT INTO snapshot_runs(run_id, last_updated, demo, symbols, document)
        VALUES ($1, $2, $3, $4, $5)`
	_, err = r.db.conn(ctx).Exec(ctx, ins, id, run.LastUpdated, run.Demo, syms, string(run.Document))
	return err
}

func (r *ArchiveRepo) LatestQuote(ctx context.Context, symbol domain.Symbol) (domain.Quote, error) {
	const q = `
        SELECT symbol, price::float8, change::float8, change_percent::float8, open::float8, high::float8,
               low::float8, volume, prev_close::float8, latest_trading_day
        FROM stock_quotes WHERE symbol=$1`
	var out domain.Quote
	var sym string
	err := r.db.conn(ctx).QueryRow(ctx, q, symbol.String()).Scan(
		&sym, &out.Price, &out.Change, &out.ChangePercent, &out.Open, &out.High,
		&out.Low, &out.Volume, &out.PrevClose, &out.LatestTradingDay)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quote{}, application.ErrNotFound
	}
	if err != nil {
		return domain.Quote{}, err
	}
	out.Symbol = domain.Symbol(sym)
	return out, nil
}

// DailyBars returns the stored bars for symbol, oldest first.
func (r *ArchiveRepo) DailyBars(ctx context.Context, symbol domain.Symbol) ([]domain.HistoryPoint, error) {
	const q = `
        SELECT day, open::float8, high::float8, low::float8, close::float8, volume
        FROM stock_daily_bars WHERE symbol=$1 ORDER BY day`
	rows, err := r.db.conn(ctx).Query(ctx, q, symbol.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.HistoryPoint{}
	for rows.Next() {
		var p domain.HistoryPoint
		var day time.Time
		if err := rows.Scan(&day, &p.Open, &p.High, &p.Low, &p.Close, &p.Volume); err != nil {
			return nil, err
		}
		p.Date = day.Format(dayLayout)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ArchiveRepo) LatestRun(ctx context.Context) (domain.RunRecord, error) {
	const q = `
        SELECT run_id::text, last_updated, demo, symbols, document::text
        FROM snapshot_runs ORDER BY last_updated DESC LIMIT 1`
	var out domain.RunRecord
	var syms []string
	var doc string
	err := r.db.conn(ctx).QueryRow(ctx, q).Scan(&out.RunID, &out.LastUpdated, &out.Demo, &syms, &doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.RunRecord{}, application.ErrNotFound
	}
	if err != nil {
		return domain.RunRecord{}, err
	}
	out.LastUpdated = out.LastUpdated.UTC()
	out.Document = []byte(doc)
	for _, s := range syms {
		out.Symbols = append(out.Symbols, domain.Symbol(s))
	}
	return out, nil
}
