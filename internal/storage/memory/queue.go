package memory

import (
	"context"
	"sync"

	"github.com/abcretail/storefront/internal/domain"
	kafkax "github.com/abcretail/storefront/internal/kafka"
)

// IntentQueue records submitted intents as wire-format envelopes so tests
// can replay them through the fulfillment handler, including more than once
// to simulate at-least-once redelivery.
type IntentQueue struct {
	mu        sync.Mutex
	messages  [][]byte
	intents   []domain.OrderIntent
	FailFor   map[string]error // productID -> forced submit error
	ServiceID string
}

func NewIntentQueue() *IntentQueue {
	return &IntentQueue{ServiceID: "test-producer"}
}

var _ domain.IntentQueue = (*IntentQueue)(nil)

func (q *IntentQueue) Submit(_ context.Context, intent domain.OrderIntent) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err, ok := q.FailFor[intent.ProductID]; ok {
		return "", err
	}
	eventID, value, err := kafkax.EncodeIntent(q.ServiceID, intent)
	if err != nil {
		return "", err
	}
	q.messages = append(q.messages, value)
	q.intents = append(q.intents, intent)
	return eventID, nil
}

// Messages returns the queued envelope bytes in submission order.
func (q *IntentQueue) Messages() [][]byte {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([][]byte, len(q.messages))
	copy(out, q.messages)
	return out
}

func (q *IntentQueue) Intents() []domain.OrderIntent {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]domain.OrderIntent, len(q.intents))
	copy(out, q.intents)
	return out
}
