package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order is the immutable booking produced by fulfillment. It is created at
// most once per completed payment session; the fulfillment pipeline never
// updates or deletes it.
type Order struct {
	ID               string          `json:"id" db:"id"`
	UserID           string          `json:"user_id" db:"user_id"`
	SessionReference string          `json:"session_reference" db:"session_reference"`
	Items            []OrderItem     `json:"items"`
	ShippingAddress  ShippingAddress `json:"shipping_address"`
	TotalPrice       decimal.Decimal `json:"total_price" db:"total_price"`
	PaidAt           time.Time       `json:"paid_at" db:"paid_at"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

// OrderItem is a snapshot of a cart item at the time of payment.
type OrderItem struct {
	ID          string              `json:"id" db:"id"`
	ProductID   string              `json:"product_id" db:"product_id"`
	SalePrice   decimal.NullDecimal `json:"sale_price" db:"sale_price"`
	RentalTotal decimal.NullDecimal `json:"rental_total" db:"rental_total"`
}

// ShippingAddress is supplied by the shopper at checkout initiation and
// travels through the payment session's metadata bag.
type ShippingAddress struct {
	Details    string `json:"details"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// Validate checks the fields the checkout flow requires.
func (a ShippingAddress) Validate() error {
	if a.Details == "" {
		return fmt.Errorf("%w: shipping address details are required", ErrInvalidInput)
	}
	if a.Phone == "" {
		return fmt.Errorf("%w: shipping phone is required", ErrInvalidInput)
	}
	if a.City == "" {
		return fmt.Errorf("%w: shipping city is required", ErrInvalidInput)
	}
	return nil
}

// Metadata flattens the address into the opaque string map the payment
// processor carries alongside the session.
func (a ShippingAddress) Metadata() map[string]string {
	return map[string]string{
		"details":     a.Details,
		"phone":       a.Phone,
		"city":        a.City,
		"postal_code": a.PostalCode,
	}
}

// ShippingAddressFromMetadata rebuilds the address from a completed
// session's metadata bag.
func ShippingAddressFromMetadata(meta map[string]string) ShippingAddress {
	return ShippingAddress{
		Details:    meta["details"],
		Phone:      meta["phone"],
		City:       meta["city"],
		PostalCode: meta["postal_code"],
	}
}

// OrderCreateRequest carries everything fulfillment resolved from the
// completed session plus the cart snapshot.
type OrderCreateRequest struct {
	UserID           string
	SessionReference string
	Items            []OrderItem
	ShippingAddress  ShippingAddress
	TotalPrice       decimal.Decimal
	PaidAt           time.Time
}

// Validate checks the request before it reaches the store.
func (r *OrderCreateRequest) Validate() error {
	if r.UserID == "" {
		return fmt.Errorf("%w: order must belong to a user", ErrInvalidInput)
	}
	if r.SessionReference == "" {
		return fmt.Errorf("%w: order requires a session reference", ErrInvalidInput)
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("%w: order requires at least one item", ErrInvalidInput)
	}
	if r.TotalPrice.IsNegative() {
		return fmt.Errorf("%w: order total cannot be negative", ErrInvalidInput)
	}
	return nil
}
