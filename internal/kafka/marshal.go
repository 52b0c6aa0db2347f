package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abcretail/storefront/internal/domain"
)

func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// EncodeIntent wraps an order intent in the wire envelope. Both the kafka
// queue adapter and the in-memory test queue go through here so the wire
// format has a single source.
func EncodeIntent(producer string, intent domain.OrderIntent) (eventID string, value []byte, err error) {
	payload, err := json.Marshal(intent)
	if err != nil {
		return "", nil, fmt.Errorf("marshal intent: %w", err)
	}
	env := domain.Envelope{
		EventID:      uuid.NewString(),
		EventType:    domain.EventOrderSubmitted,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     producer,
		Payload:      payload,
	}
	b, err := json.Marshal(env)
	if err != nil {
		return "", nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return env.EventID, b, nil
}

// UnwrapPayload decodes the event-specific payload out of an envelope.
func UnwrapPayload[T any](payload json.RawMessage) (T, error) {
	var t T
	if err := json.Unmarshal(payload, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
