// Package cart implements the owner-scoped cart mutation operations. The
// cart stores only (owner, product, quantity); every read joins product
// details live from the catalog, so views can go stale between read and
// checkout and the orchestrator re-fetches products at checkout time.
package cart

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/abcretail/storefront/internal/domain"
)

type Service struct {
	Cart     domain.CartStore
	Products domain.ProductStore
	Log      log.FieldLogger
}

// AddLine adds qty units of a product, incrementing an existing line. The
// cumulative quantity must not exceed current stock: exactly at stock is
// accepted, one above is rejected.
func (s *Service) AddLine(ctx context.Context, owner, productID string, qty int) error {
	if owner == "" || productID == "" || qty < 1 {
		return domain.ErrValidation
	}
	product, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("fetch product: %w", err)
	}

	total := qty
	existing, err := s.Cart.Get(ctx, owner, productID)
	switch {
	case err == nil:
		total += existing.Quantity
	case domain.IsNotFound(err):
		// first line for this product
	default:
		return err
	}

	if total > product.Stock {
		return fmt.Errorf("%w: requested %d, available %d", domain.ErrInsufficientStock, total, product.Stock)
	}
	return s.Cart.Put(ctx, domain.CartLine{Owner: owner, ProductID: productID, Quantity: total})
}

// SetQuantity replaces the quantity of an existing line.
func (s *Service) SetQuantity(ctx context.Context, owner, productID string, qty int) error {
	if qty < 1 {
		return domain.ErrValidation
	}
	if _, err := s.Cart.Get(ctx, owner, productID); err != nil {
		return err
	}
	product, err := s.Products.GetByID(ctx, productID)
	if err == nil && qty > product.Stock {
		return fmt.Errorf("%w: requested %d, available %d", domain.ErrInsufficientStock, qty, product.Stock)
	}
	if err != nil && !domain.IsNotFound(err) {
		return err
	}
	return s.Cart.Put(ctx, domain.CartLine{Owner: owner, ProductID: productID, Quantity: qty})
}

func (s *Service) RemoveLine(ctx context.Context, owner, productID string) error {
	return s.Cart.Remove(ctx, owner, productID)
}

func (s *Service) ClearCart(ctx context.Context, owner string) error {
	return s.Cart.Clear(ctx, owner)
}

func (s *Service) Count(ctx context.Context, owner string) (int, error) {
	return s.Cart.Count(ctx, owner)
}

// View joins every cart line with current product details. Lines whose
// product has been deleted stay in the view flagged as missing.
func (s *Service) View(ctx context.Context, owner string) ([]domain.CartItemView, error) {
	lines, err := s.Cart.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CartItemView, 0, len(lines))
	for _, line := range lines {
		item := domain.CartItemView{ProductID: line.ProductID, Quantity: line.Quantity}
		product, err := s.Products.GetByID(ctx, line.ProductID)
		switch {
		case err == nil:
			item.ProductName = product.Name
			item.ImageURL = product.ImageURL
			item.UnitPriceCents = product.PriceCents
			item.Stock = product.Stock
		case domain.IsNotFound(err):
			item.ProductMissing = true
		default:
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
