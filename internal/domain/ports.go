package domain

import "context"

// ProductStore is the catalog collection adapter.
type ProductStore interface {
	// Create assigns an id and version when absent.
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (Product, error)
	List(ctx context.Context) ([]Product, error)
	// Update requires the caller to echo the version from a prior read;
	// a stale version fails with ErrVersionConflict.
	Update(ctx context.Context, p *Product) error
	// Delete is idempotent: deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

type CustomerStore interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (Customer, error)
	GetByUsername(ctx context.Context, username string) (Customer, error)
	List(ctx context.Context) ([]Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id string) error
}

type OrderStore interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (Order, error)
	List(ctx context.Context) ([]Order, error)
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id string) error
	// ExistsForCustomer backs the customer deletion guard.
	ExistsForCustomer(ctx context.Context, customerID string) (bool, error)
}

// CartStore owns only the (owner, product) link rows. Every operation is
// scoped to one owner; Put sets the absolute quantity (last write wins).
type CartStore interface {
	Put(ctx context.Context, line CartLine) error
	Get(ctx context.Context, owner, productID string) (CartLine, error)
	ListByOwner(ctx context.Context, owner string) ([]CartLine, error)
	Remove(ctx context.Context, owner, productID string) error
	Clear(ctx context.Context, owner string) error
	Count(ctx context.Context, owner string) (int, error)
}

// IntentQueue accepts an order intent for asynchronous fulfillment.
// Delivery is at-least-once; acceptance here does not mean the order row
// exists yet.
type IntentQueue interface {
	Submit(ctx context.Context, intent OrderIntent) (eventID string, err error)
}
