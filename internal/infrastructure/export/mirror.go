package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"stock-snapshot/internal/application"
	"stock-snapshot/internal/domain"
)

// HistoryExporter writes <dir>/<SYMBOL>.<ext> for every symbol in a snapshot.
type HistoryExporter struct {
	dir   string
	saver Saver
}

var _ application.SnapshotMirror = (*HistoryExporter)(nil)

func NewHistoryExporter(dir, format string) (*HistoryExporter, error) {
	s, err := NewSaver(format)
	if err != nil {
		return nil, err
	}
	return &HistoryExporter{dir: dir, saver: s}, nil
}

func (e *HistoryExporter) Name() string { return "export:" + e.saver.Extension() }

func (e *HistoryExporter) Mirror(ctx context.Context, snap *domain.Snapshot) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("export: create dir %s: %w", e.dir, err)
	}
	for _, sym := range snap.Symbols {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := e.Path(sym)
		if err := e.saver.Save(rowsFor(sym, snap.Stocks[sym].History), path); err != nil {
			return fmt.Errorf("export: %s: %w", path, err)
		}
	}
	return nil
}

func (e *HistoryExporter) Path(sym domain.Symbol) string {
	return filepath.Join(e.dir, sym.String()+"."+e.saver.Extension())
}
