package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"souq/internal/models"
)

// ProductRepository handles product data operations
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(id string) (*models.Product, error) {
	product := &models.Product{}
	err := r.db.QueryRow(`
		SELECT id, name, sale_price, rental_total, available,
			ratings_average, ratings_count, owner_id, created_at
		FROM products
		WHERE id = $1`, id).Scan(
		&product.ID,
		&product.Name,
		&product.SalePrice,
		&product.RentalTotal,
		&product.Available,
		&product.RatingsAverage,
		&product.RatingsCount,
		&product.OwnerID,
		&product.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// MarkUnavailable flips the availability flag to false for every given
// product. The write is monotone (sold products are not re-listed through
// the same record), so re-applying it on a redelivery is harmless.
func (r *ProductRepository) MarkUnavailable(productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}

	_, err := r.db.Exec(
		"UPDATE products SET available = FALSE WHERE id = ANY($1)",
		pq.Array(productIDs))
	if err != nil {
		return fmt.Errorf("failed to mark products unavailable: %w", err)
	}
	return nil
}

// RecomputeRating refreshes the product's rating aggregate from its
// reviews. Called explicitly by the review service after every review
// mutation; there are no implicit store hooks.
func (r *ProductRepository) RecomputeRating(productID string) error {
	_, err := r.db.Exec(`
		UPDATE products SET
			ratings_count = (SELECT COUNT(*) FROM reviews WHERE product_id = $1),
			ratings_average = COALESCE(
				(SELECT ROUND(AVG(rating), 2) FROM reviews WHERE product_id = $1), 0)
		WHERE id = $1`, productID)
	if err != nil {
		return fmt.Errorf("failed to recompute product rating: %w", err)
	}
	return nil
}
