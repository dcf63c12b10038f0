package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stock-snapshot/internal/application"
	"stock-snapshot/internal/domain"
)

var ErrNoSnapshot = errors.New("redis: no snapshot stored")

// SnapshotStore keeps the latest document under Key and each record under Key:<SYMBOL>.
type SnapshotStore struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
}

var _ application.SnapshotMirror = (*SnapshotStore)(nil)

func New(client *redis.Client, key string, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{Client: client, Key: key, TTL: ttl}
}

func (s *SnapshotStore) Name() string { return "redis" }

func (s *SnapshotStore) SymbolKey(sym domain.Symbol) string { return s.Key + ":" + sym.String() }

func (s *SnapshotStore) Mirror(ctx context.Context, snap *domain.Snapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("redis: encode snapshot: %w", err)
	}
	records := make(map[string][]byte, snap.Len())
	for _, sym := range snap.Symbols {
		b, err := json.Marshal(snap.Stocks[sym])
		if err != nil {
			return fmt.Errorf("redis: encode %s: %w", sym, err)
		}
		records[s.SymbolKey(sym)] = b
	}

	_, err = s.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.Key, doc, s.TTL)
		for k, v := range records {
			p.Set(ctx, k, v, s.TTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: write snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	b, err := s.Client.Get(ctx, s.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("redis: decode snapshot: %w", err)
	}
	return &snap, nil
}
