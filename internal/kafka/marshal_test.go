package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abcretail/storefront/internal/domain"
)

func TestEncodeIntentRoundTrip(t *testing.T) {
	intent := domain.OrderIntent{
		CustomerID:     "c1",
		Username:       "alice",
		ProductID:      "p1",
		ProductName:    "P1",
		OrderedAt:      time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		Quantity:       2,
		UnitPriceCents: 1000,
		TotalCents:     2000,
		Status:         domain.StatusSubmitted,
	}

	eventID, value, err := EncodeIntent("storefront-api", intent)
	require.NoError(t, err)
	require.NotEmpty(t, eventID)

	var env domain.Envelope
	require.NoError(t, json.Unmarshal(value, &env))
	require.Equal(t, eventID, env.EventID)
	require.Equal(t, domain.EventOrderSubmitted, env.EventType)
	require.Equal(t, 1, env.EventVersion)
	require.Equal(t, "storefront-api", env.Producer)

	decoded, err := UnwrapPayload[domain.OrderIntent](env.Payload)
	require.NoError(t, err)
	require.Equal(t, intent, decoded)
}

func TestUnwrapPayloadGarbage(t *testing.T) {
	_, err := UnwrapPayload[domain.OrderIntent](json.RawMessage(`"not an object"`))
	require.Error(t, err)
}
