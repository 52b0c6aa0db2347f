// Package fulfillment drains the order intake queue and commits intents as
// durable order rows.
//
// The worker trusts the price/name snapshot frozen at intent time: no
// revalidation against the catalog and no stock decrement happens here.
// Delivery is at-least-once and the worker does not deduplicate — a
// redelivered intent is committed again under a fresh order id.
package fulfillment

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"github.com/abcretail/storefront/internal/domain"
	kafkax "github.com/abcretail/storefront/internal/kafka"
	"github.com/abcretail/storefront/internal/metrics"
)

type Worker struct {
	Orders  domain.OrderStore
	Metrics *metrics.Fulfillment
	Log     log.FieldLogger
}

// HandleMessage processes one delivered message. Undecodable or empty
// payloads are logged, counted and acked; returning an error here would
// only make the transport redeliver a message that can never succeed.
func (w *Worker) HandleMessage(ctx context.Context, m kafkago.Message) error {
	var env domain.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		w.drop("undecodable envelope", err)
		return nil
	}
	if env.EventType != domain.EventOrderSubmitted {
		return nil // not ours
	}

	intent, err := kafkax.UnwrapPayload[domain.OrderIntent](env.Payload)
	if err != nil {
		w.drop("undecodable intent payload", err)
		return nil
	}
	if intent.Empty() {
		w.drop("empty intent payload", nil)
		return nil
	}

	order := domain.Order{OrderIntent: intent}
	if order.Status == "" {
		order.Status = domain.StatusSubmitted
	}
	if err := w.Orders.Create(ctx, &order); err != nil {
		// store write failure is retryable: surface it so the offset is
		// not committed and the message is redelivered
		return err
	}

	w.Metrics.Committed.Inc()
	w.Log.WithFields(log.Fields{
		"order_id": order.ID,
		"owner":    order.Username,
		"event_id": env.EventID,
	}).Info("order committed")
	return nil
}

func (w *Worker) drop(reason string, err error) {
	w.Metrics.Dropped.Inc()
	entry := w.Log.WithField("reason", reason)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn("dropping queue message")
}
