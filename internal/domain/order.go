package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is immutable once created; there is no update or delete path.
// CheckoutSessionID is the payment provider's session id and doubles as
// the idempotency key for webhook redeliveries.
type Order struct {
	ID                string          `json:"id"`
	CheckoutSessionID string          `json:"-"`
	CustomerClerkID   string          `json:"customerClerkId"`
	Items             []OrderItem     `json:"products"`
	ShippingAddress   ShippingAddress `json:"shippingAddress"`
	ShippingRate      string          `json:"shippingRate"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// OrderItem is one line within an order, not a stored entity of its own.
type OrderItem struct {
	Product  string `json:"product"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type ShippingAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}
