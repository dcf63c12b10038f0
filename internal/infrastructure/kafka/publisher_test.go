package kafkapub_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"stock-snapshot/internal/domain"
	kafkapub "stock-snapshot/internal/infrastructure/kafka"
)

type mockWriter struct {
	messages   []kafka.Message
	shouldFail bool
	closed     bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.shouldFail {
		return errors.New("kafka error")
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func snapshot() *domain.Snapshot {
	s := domain.NewSnapshot("run-9", true)
	s.LastUpdated = time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	s.Put("TSLA", domain.NewStockRecord(domain.Quote{Symbol: "TSLA", Price: 175}, nil))
	s.Put("AMZN", domain.NewStockRecord(domain.Quote{Symbol: "AMZN", Price: 220}, []domain.HistoryPoint{{Date: "2024-05-09"}}))
	return s
}

func TestPublisher_OneMessagePerSymbol(t *testing.T) {
	w := &mockWriter{}
	p := kafkapub.NewPublisher(w)
	require.Equal(t, "kafka", p.Name())
	require.NoError(t, p.Mirror(context.Background(), snapshot()))

	require.Len(t, w.messages, 2)
	require.Equal(t, "TSLA", string(w.messages[0].Key))
	require.Equal(t, "AMZN", string(w.messages[1].Key))

	var msg kafkapub.StockMessage
	require.NoError(t, json.Unmarshal(w.messages[1].Value, &msg))
	require.Equal(t, "run-9", msg.RunID)
	require.True(t, msg.Demo)
	require.Equal(t, "2024-05-10T14:30:00.000000Z", msg.LastUpdated)
	require.Len(t, msg.Record.History, 1)

	hdr := map[string]string{}
	for _, h := range w.messages[0].Headers {
		hdr[h.Key] = string(h.Value)
	}
	require.Equal(t, map[string]string{"run_id": "run-9", "demo": "true"}, hdr)

	require.NoError(t, p.Close())
	require.True(t, w.closed)
}

func TestPublisher_WriteError(t *testing.T) {
	p := kafkapub.NewPublisher(&mockWriter{shouldFail: true})
	err := p.Mirror(context.Background(), snapshot())
	require.Error(t, err)
}

func TestPublisher_EmptySnapshot(t *testing.T) {
	w := &mockWriter{shouldFail: true}
	p := kafkapub.NewPublisher(w)
	require.NoError(t, p.Mirror(context.Background(), domain.NewSnapshot("r", false)))
}

func TestNewWriter(t *testing.T) {
	w := kafkapub.NewWriter([]string{"localhost:9092"}, "stock_quotes")
	require.Equal(t, "stock_quotes", w.Topic)
	require.NoError(t, w.Close())
}
