package domain

import "time"

type Status string

const (
	// StatusSubmitted is the only status the pipeline writes on creation.
	StatusSubmitted  Status = "Submitted"
	StatusProcessing Status = "Processing"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

// OrderIntent is the queue payload: a cart line frozen at submission time.
// Price and name are snapshots and are never re-read at commit time.
type OrderIntent struct {
	CustomerID     string    `json:"customer_id"`
	Username       string    `json:"username"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	OrderedAt      time.Time `json:"order_date"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	TotalCents     int64     `json:"total_cents"`
	Status         Status    `json:"status"`
}

// Empty reports a semantically empty intent; the fulfillment worker drops
// such payloads instead of committing a junk row.
func (i OrderIntent) Empty() bool {
	return i.Username == "" && i.ProductID == "" && i.Quantity == 0
}

// Order is a durably committed intent. The id is generated at commit time,
// so a redelivered intent produces a second, distinct row.
type Order struct {
	ID string `json:"order_id"`
	OrderIntent
	Version string `json:"version,omitempty"`
}
