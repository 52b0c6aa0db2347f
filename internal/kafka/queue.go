package kafka

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/abcretail/storefront/internal/domain"
)

// Queue adapts the producer to the intent queue port. Messages are keyed by
// owner so one customer's intents stay FIFO on a single partition.
type Queue struct {
	Producer *Producer
	Service  string
}

var _ domain.IntentQueue = (*Queue)(nil)

func (q *Queue) Submit(ctx context.Context, intent domain.OrderIntent) (string, error) {
	eventID, value, err := EncodeIntent(q.Service, intent)
	if err != nil {
		return "", err
	}
	err = q.Producer.Publish(ctx, domain.PartitionKey(intent.Username), value,
		kafka.Header{Key: "x-event-type", Value: []byte(domain.EventOrderSubmitted)},
		kafka.Header{Key: "x-event-version", Value: []byte("1")},
	)
	if err != nil {
		return "", fmt.Errorf("enqueue intent: %w", err)
	}
	return eventID, nil
}
