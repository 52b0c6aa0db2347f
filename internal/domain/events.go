package domain

import (
	"encoding/json"
	"time"
)

const (
	EventOrderSubmitted = "OrderSubmitted"

	TopicOrderSubmitted = "orders.submitted"
)

// Envelope wraps every message on the intake topic.
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

// PartitionKey keys messages by owner so one customer's intents stay in
// submission order on a single partition.
func PartitionKey(owner string) []byte { return []byte(owner) }
