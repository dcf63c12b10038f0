package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"stock-snapshot/internal/application"
	"stock-snapshot/internal/domain"
)

// FileSink writes the snapshot document to a single path, replacing what was there.
type FileSink struct {
	Path string
}

var _ application.SnapshotSink = (*FileSink)(nil)

func NewFileSink(path string) *FileSink { return &FileSink{Path: path} }

// Prepare creates the parent directory. Safe to call repeatedly.
func (s *FileSink) Prepare(context.Context) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("snapshot: create dir %s: %w", dir, err)
	}
	return nil
}

func (s *FileSink) Write(_ context.Context, snap *domain.Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	if err := os.WriteFile(s.Path, b, 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", s.Path, err)
	}
	return nil
}

// Read loads a document previously written by Write.
func Read(path string) (*domain.Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("snapshot: decode %s: %w", path, err)
	}
	return &snap, nil
}
