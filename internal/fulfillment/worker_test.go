package fulfillment_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/abcretail/storefront/internal/domain"
	"github.com/abcretail/storefront/internal/fulfillment"
	kafkax "github.com/abcretail/storefront/internal/kafka"
	"github.com/abcretail/storefront/internal/metrics"
	"github.com/abcretail/storefront/internal/storage/memory"
)

func newWorker(t *testing.T) (*fulfillment.Worker, *memory.OrderStore) {
	t.Helper()
	logger := log.New()
	logger.SetOutput(io.Discard)
	orders := memory.NewOrderStore()
	return &fulfillment.Worker{
		Orders:  orders,
		Metrics: metrics.NewFulfillment(prometheus.NewRegistry()),
		Log:     logger,
	}, orders
}

func sampleIntent() domain.OrderIntent {
	return domain.OrderIntent{
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
}

func encode(t *testing.T, intent domain.OrderIntent) kafkago.Message {
	t.Helper()
	_, value, err := kafkax.EncodeIntent("test", intent)
	require.NoError(t, err)
	return kafkago.Message{Value: value}
}

func TestHandleMessage_CommitsSnapshotUnchanged(t *testing.T) {
	worker, orders := newWorker(t)
	intent := sampleIntent()

	require.NoError(t, worker.HandleMessage(context.Background(), encode(t, intent)))

	stored, err := orders.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)

	order := stored[0]
	require.NotEmpty(t, order.ID)
	require.Equal(t, intent.ProductName, order.ProductName)
	require.Equal(t, intent.Quantity, order.Quantity)
	require.Equal(t, intent.UnitPriceCents, order.UnitPriceCents)
	require.Equal(t, intent.TotalCents, order.TotalCents)
	require.Equal(t, domain.StatusSubmitted, order.Status)
	require.True(t, intent.OrderedAt.Equal(order.OrderedAt))
}

// At-least-once redelivery is not deduplicated: the same intent delivered
// twice commits two distinct rows. Expected behavior, pinned here so a
// future dedup shows up as a deliberate change.
func TestHandleMessage_DuplicateDeliveryCommitsTwice(t *testing.T) {
	worker, orders := newWorker(t)
	m := encode(t, sampleIntent())

	require.NoError(t, worker.HandleMessage(context.Background(), m))
	require.NoError(t, worker.HandleMessage(context.Background(), m))

	stored, err := orders.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	require.NotEqual(t, stored[0].ID, stored[1].ID)
}

func TestHandleMessage_DropsGarbage(t *testing.T) {
	worker, orders := newWorker(t)

	// garbage is acked (nil), never retried
	require.NoError(t, worker.HandleMessage(context.Background(), kafkago.Message{Value: []byte("not json")}))

	stored, err := orders.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestHandleMessage_DropsEmptyIntent(t *testing.T) {
	worker, orders := newWorker(t)

	require.NoError(t, worker.HandleMessage(context.Background(), encode(t, domain.OrderIntent{})))

	stored, err := orders.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestHandleMessage_IgnoresForeignEvents(t *testing.T) {
	worker, orders := newWorker(t)

	env := domain.Envelope{EventID: "e1", EventType: "SomethingElse", EventVersion: 1}
	require.NoError(t, worker.HandleMessage(context.Background(), kafkago.Message{Value: kafkax.MustMarshal(env)}))

	stored, err := orders.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, stored)
}

// Round trip through the in-memory queue: what checkout submits is exactly
// what the worker commits.
func TestQueueRoundTrip(t *testing.T) {
	worker, orders := newWorker(t)
	queue := memory.NewIntentQueue()

	intent := sampleIntent()
	_, err := queue.Submit(context.Background(), intent)
	require.NoError(t, err)

	for _, value := range queue.Messages() {
		require.NoError(t, worker.HandleMessage(context.Background(), kafkago.Message{Value: value}))
	}

	stored, err := orders.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, intent.TotalCents, stored[0].TotalCents)
	require.Equal(t, intent.ProductName, stored[0].ProductName)
}
