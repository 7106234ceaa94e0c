package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a single-unit marketplace listing. Exactly one of SalePrice and
// RentalTotal is populated, matching how the product was listed. Available
// flips to false once the listing is sold; there is no stock count.
type Product struct {
	ID             string              `json:"id" db:"id"`
	Name           string              `json:"name" db:"name"`
	SalePrice      decimal.NullDecimal `json:"sale_price" db:"sale_price"`
	RentalTotal    decimal.NullDecimal `json:"rental_total" db:"rental_total"`
	Available      bool                `json:"available" db:"available"`
	RatingsAverage decimal.Decimal     `json:"ratings_average" db:"ratings_average"`
	RatingsCount   int                 `json:"ratings_count" db:"ratings_count"`
	OwnerID        string              `json:"owner_id" db:"owner_id"`
	CreatedAt      time.Time           `json:"created_at" db:"created_at"`
}
