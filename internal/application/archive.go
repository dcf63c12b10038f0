package application

import (
	"context"
	"fmt"

	"stock-snapshot/internal/domain"
)

// ArchiveMirror stores a snapshot row by row inside one unit of work.
type ArchiveMirror struct {
	uow     UnitOfWork
	archive SnapshotArchive
}

var _ SnapshotMirror = (*ArchiveMirror)(nil)

func NewArchiveMirror(uow UnitOfWork, archive SnapshotArchive) *ArchiveMirror {
	if uow == nil {
		uow = NoopUoW{}
	}
	return &ArchiveMirror{uow: uow, archive: archive}
}

func (m *ArchiveMirror) Name() string { return "postgres" }

func (m *ArchiveMirror) Mirror(ctx context.Context, snap *domain.Snapshot) error {
	run, err := domain.NewRunRecord(snap)
	if err != nil {
		return fmt.Errorf("archive: encode run: %w", err)
	}
	return m.uow.Do(ctx, func(ctx context.Context) error {
		for _, sym := range snap.Symbols {
			rec := snap.Stocks[sym]
			q := rec.Quote
			// rows are keyed by the configured symbol, not the one echoed by the provider
			q.Symbol = sym
			if err := m.archive.UpsertQuote(ctx, snap.RunID, q); err != nil {
				return fmt.Errorf("archive: quote %s: %w", sym, err)
			}
			if err := m.archive.UpsertDailyBars(ctx, sym, rec.History); err != nil {
				return fmt.Errorf("archive: bars %s: %w", sym, err)
			}
		}
		if err := m.archive.InsertRun(ctx, run); err != nil {
			return fmt.Errorf("archive: run: %w", err)
		}
		return nil
	})
}
