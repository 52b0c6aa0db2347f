// Package checkout turns a cart snapshot into queued order intents.
//
// Checkout is a saga, not a transaction: every surviving line becomes one
// intent on the intake queue, per-line outcomes are aggregated, and the
// whole cart is cleared after every line has been attempted. A line whose
// enqueue failed is still cleared; that consistency gap is reported in the
// result rather than hidden.
package checkout

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/abcretail/storefront/internal/domain"
	"github.com/abcretail/storefront/internal/metrics"
)

type Service struct {
	Cart      domain.CartStore
	Products  domain.ProductStore
	Customers domain.CustomerStore
	Queue     domain.IntentQueue
	Metrics   *metrics.Checkout
	Log       log.FieldLogger
}

// Result aggregates per-line outcomes of one checkout.
type Result struct {
	Accepted int      `json:"accepted"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	EventIDs []string `json:"event_ids,omitempty"`
}

// Checkout reads the owner's cart, re-fetches each product for a fresh
// price/name snapshot, submits one intent per surviving line, then clears
// the cart — including lines whose product vanished, since a dangling
// product reference should not persist. If no line survives the product
// lookup, the cart is left untouched and ErrEmptyCart is returned.
func (s *Service) Checkout(ctx context.Context, owner string) (Result, error) {
	var res Result

	customer, err := s.Customers.GetByUsername(ctx, owner)
	if err != nil {
		return res, fmt.Errorf("customer profile: %w", err)
	}

	lines, err := s.Cart.ListByOwner(ctx, owner)
	if err != nil {
		return res, err
	}
	if len(lines) == 0 {
		return res, domain.ErrEmptyCart
	}

	for _, line := range lines {
		product, err := s.Products.GetByID(ctx, line.ProductID)
		if domain.IsNotFound(err) {
			res.Skipped++
			s.Metrics.LinesSkipped.Inc()
			s.Log.WithFields(log.Fields{"owner": owner, "product_id": line.ProductID}).
				Info("skipping cart line, product gone")
			continue
		}
		if err != nil {
			res.Failed++
			s.Metrics.LinesFailed.Inc()
			continue
		}

		intent := domain.OrderIntent{
			CustomerID:     customer.ID,
			Username:       owner,
			ProductID:      product.ID,
			ProductName:    product.Name,
			OrderedAt:      time.Now().UTC(),
			Quantity:       line.Quantity,
			UnitPriceCents: product.PriceCents,
			TotalCents:     product.PriceCents * int64(line.Quantity),
			Status:         domain.StatusSubmitted,
		}

		eventID, err := s.Queue.Submit(ctx, intent)
		if err != nil {
			res.Failed++
			s.Metrics.LinesFailed.Inc()
			s.Log.WithError(err).WithFields(log.Fields{"owner": owner, "product_id": line.ProductID}).
				Warn("intent enqueue failed")
			continue
		}
		res.Accepted++
		res.EventIDs = append(res.EventIDs, eventID)
		s.Metrics.LinesAccepted.Inc()
	}

	// Zero survivors means nothing was attempted against the queue; leave
	// the cart alone so the owner can retry.
	if res.Accepted == 0 && res.Failed == 0 {
		return res, domain.ErrEmptyCart
	}

	if err := s.Cart.Clear(ctx, owner); err != nil {
		return res, fmt.Errorf("clear cart: %w", err)
	}

	s.Log.WithFields(log.Fields{
		"owner": owner, "accepted": res.Accepted, "skipped": res.Skipped, "failed": res.Failed,
	}).Info("checkout complete")
	return res, nil
}
