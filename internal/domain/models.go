package domain

import "time"

// Product is the catalog source of truth for price and stock.
type Product struct {
	ID          string    `json:"product_id"`
	Name        string    `json:"product_name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int       `json:"stock_available"`
	ImageURL    string    `json:"image_url,omitempty"`
	Version     string    `json:"version,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Product) Validate() error {
	if p.Name == "" || p.PriceCents < 0 || p.Stock < 0 {
		return ErrValidation
	}
	return nil
}

type Customer struct {
	ID              string    `json:"customer_id"`
	Name            string    `json:"name"`
	Surname         string    `json:"surname"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	ShippingAddress string    `json:"shipping_address"`
	Version         string    `json:"version,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (c *Customer) Validate() error {
	if c.Name == "" || c.Username == "" {
		return ErrValidation
	}
	return nil
}

// CartLine is the only state the cart owns: a link row per (owner, product).
// Descriptive fields are joined live from the catalog at read time.
type CartLine struct {
	Owner     string `json:"owner"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartItemView is a cart line joined with current product details. A line
// whose product has since been deleted keeps the row but flags it, so the
// caller can see the stale reference instead of a silently shorter cart.
type CartItemView struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Stock          int    `json:"stock_available"`
	ProductMissing bool   `json:"product_missing,omitempty"`
}
