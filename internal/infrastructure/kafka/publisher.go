package kafkapub

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"stock-snapshot/internal/application"
	"stock-snapshot/internal/domain"
)

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// StockMessage is the value of each published message.
type StockMessage struct {
	RunID       string             `json:"runId"`
	LastUpdated string             `json:"lastUpdated"`
	Demo        bool               `json:"demo"`
	Symbol      domain.Symbol      `json:"symbol"`
	Record      domain.StockRecord `json:"record"`
}

// Publisher sends one message per symbol, keyed by symbol so a symbol always lands on the same partition.
type Publisher struct {
	writer Writer
}

var _ application.SnapshotMirror = (*Publisher)(nil)

func NewPublisher(w Writer) *Publisher { return &Publisher{writer: w} }

// NewWriter builds a synchronous writer; the process exits right after publishing.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func (p *Publisher) Name() string { return "kafka" }

func (p *Publisher) Mirror(ctx context.Context, snap *domain.Snapshot) error {
	ts := domain.FormatTimestamp(snap.LastUpdated)
	msgs := make([]kafka.Message, 0, snap.Len())
	for _, sym := range snap.Symbols {
		val, err := json.Marshal(StockMessage{
			RunID:       snap.RunID,
			LastUpdated: ts,
			Demo:        snap.Demo,
			Symbol:      sym,
			Record:      domain.NewStockRecord(snap.Stocks[sym].Quote, snap.Stocks[sym].History),
		})
		if err != nil {
			return fmt.Errorf("kafka: encode %s: %w", sym, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(sym),
			Value: val,
			Time:  snap.LastUpdated,
			Headers: []kafka.Header{
				{Key: "run_id", Value: []byte(snap.RunID)},
				{Key: "demo", Value: []byte(strconv.FormatBool(snap.Demo))},
			},
		})
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka: publish %d messages: %w", len(msgs), err)
	}
	return nil
}

func (p *Publisher) Close() error { return p.writer.Close() }
