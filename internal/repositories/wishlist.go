package repositories

import (
	"database/sql"
	"fmt"

	"souq/internal/models"
)

// WishlistRepository handles per-user wishlist entries
type WishlistRepository struct {
	db *sql.DB
}

// NewWishlistRepository creates a new wishlist repository
func NewWishlistRepository(db *sql.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Add records a product on the user's wishlist. Idempotent.
func (r *WishlistRepository) Add(userID, productID string) error {
	_, err := r.db.Exec(`
		INSERT INTO wishlist_items (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING`, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return nil
}

// Remove deletes a product from the user's wishlist. Idempotent.
func (r *WishlistRepository) Remove(userID, productID string) error {
	_, err := r.db.Exec(
		"DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2",
		userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return nil
}

// List retrieves the wishlisted products for a user, newest first
func (r *WishlistRepository) List(userID string) ([]*models.Product, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.name, p.sale_price, p.rental_total, p.available,
			p.ratings_average, p.ratings_count, p.owner_id, p.created_at
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		err := rows.Scan(
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
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist product: %w", err)
		}
		products = append(products, product)
	}

	return products, rows.Err()
}
