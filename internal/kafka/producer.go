package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Producer writes synchronously so per-message acceptance can be reported
// back to the caller; the checkout path needs a yes/no per intent, not
// fire-and-forget throughput.
type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, key, value []byte, headers ...kafka.Header) error {
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:     key,
		Value:   value,
		Headers: headers,
	})
}

func (p *Producer) Close() error { return p.w.Close() }
