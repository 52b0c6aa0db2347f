package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

// Checkout counts per-line outcomes of the checkout orchestrator.
type Checkout struct {
	LinesAccepted prometheus.Counter
	LinesSkipped  prometheus.Counter
	LinesFailed   prometheus.Counter
}

func NewCheckout(reg prometheus.Registerer) *Checkout {
	m := &Checkout{
		LinesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "checkout", Name: "lines_accepted_total",
			Help: "Cart lines turned into accepted order intents.",
		}),
		LinesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "checkout", Name: "lines_skipped_total",
			Help: "Cart lines skipped because the product no longer exists.",
		}),
		LinesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "checkout", Name: "lines_failed_total",
			Help: "Cart lines whose intent could not be enqueued.",
		}),
	}
	reg.MustRegister(m.LinesAccepted, m.LinesSkipped, m.LinesFailed)
	return m
}

// Fulfillment counts worker outcomes per delivered message.
type Fulfillment struct {
	Committed prometheus.Counter
	Dropped   prometheus.Counter
}

func NewFulfillment(reg prometheus.Registerer) *Fulfillment {
	m := &Fulfillment{
		Committed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "fulfillment", Name: "orders_committed_total",
			Help: "Order rows durably written from queued intents.",
		}),
		Dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "fulfillment", Name: "messages_dropped_total",
			Help: "Undecodable or empty queue messages dropped.",
		}),
	}
	reg.MustRegister(m.Committed, m.Dropped)
	return m
}
