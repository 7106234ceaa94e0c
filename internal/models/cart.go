package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the mutable per-user shopping cart. One active cart per user,
// created lazily on the first add.
type Cart struct {
	ID         string          `json:"id" db:"id"`
	UserID     string          `json:"user_id" db:"user_id"`
	Items      []CartItem      `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price" db:"total_price"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// CartItem snapshots the product's price at the moment it was added; it is
// not re-read at checkout time. Exactly one of the two price fields is set.
type CartItem struct {
	ID          string              `json:"id" db:"id"`
	ProductID   string              `json:"product_id" db:"product_id"`
	SalePrice   decimal.NullDecimal `json:"sale_price" db:"sale_price"`
	RentalTotal decimal.NullDecimal `json:"rental_total" db:"rental_total"`
}

// Price returns the populated price field, or zero if neither is set.
func (i CartItem) Price() decimal.Decimal {
	if i.SalePrice.Valid {
		return i.SalePrice.Decimal
	}
	if i.RentalTotal.Valid {
		return i.RentalTotal.Decimal
	}
	return decimal.Zero
}

// CartTotal computes the cached cart total: the sum of every item's
// populated price field. Recomputed after each add/remove.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price())
	}
	return total
}
