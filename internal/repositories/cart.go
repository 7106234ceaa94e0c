package repositories

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"souq/internal/models"
)

// CartRepository handles cart data operations
type CartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

// GetByUser retrieves the user's active cart with its items
func (r *CartRepository) GetByUser(userID string) (*models.Cart, error) {
	return r.getCart("user_id", userID)
}

// GetByID retrieves a cart by its identity
func (r *CartRepository) GetByID(cartID string) (*models.Cart, error) {
	return r.getCart("id", cartID)
}

func (r *CartRepository) getCart(column, value string) (*models.Cart, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, total_price, created_at, updated_at
		FROM carts
		WHERE %s = $1`, column)

	cart := &models.Cart{}
	err := r.db.QueryRow(query, value).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.TotalPrice,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	items, err := r.getItems(cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items

	return cart, nil
}

func (r *CartRepository) getItems(cartID string) ([]models.CartItem, error) {
	rows, err := r.db.Query(`
		SELECT id, product_id, sale_price, rental_total
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY id`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.SalePrice, &item.RentalTotal); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// AddItem appends a price snapshot to the user's cart, creating the cart
// lazily. Returns the cart id. A product already present in the cart is a
// conflict, surfaced as ErrDuplicateCartItem via the (cart_id, product_id)
// uniqueness constraint.
func (r *CartRepository) AddItem(userID string, item models.CartItem) (string, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO carts (id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING`, uuid.NewString(), userID)
	if err != nil {
		return "", fmt.Errorf("failed to ensure cart: %w", err)
	}

	var cartID string
	if err := tx.QueryRow("SELECT id FROM carts WHERE user_id = $1", userID).Scan(&cartID); err != nil {
		return "", fmt.Errorf("failed to load cart id: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO cart_items (id, cart_id, product_id, sale_price, rental_total)
		VALUES ($1, $2, $3, $4, $5)`,
		item.ID, cartID, item.ProductID, item.SalePrice, item.RentalTotal)
	if err != nil {
		if isUniqueViolation(err) {
			return "", models.ErrDuplicateCartItem
		}
		return "", fmt.Errorf("failed to add cart item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit cart item: %w", err)
	}

	return cartID, nil
}

// RemoveItem deletes an item from the user's cart. Removing an item that is
// not in the cart is a no-op; a missing cart is ErrCartNotFound.
func (r *CartRepository) RemoveItem(userID, itemID string) (string, error) {
	var cartID string
	err := r.db.QueryRow("SELECT id FROM carts WHERE user_id = $1", userID).Scan(&cartID)
	if err == sql.ErrNoRows {
		return "", models.ErrCartNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load cart id: %w", err)
	}

	_, err = r.db.Exec("DELETE FROM cart_items WHERE id = $1 AND cart_id = $2", itemID, cartID)
	if err != nil {
		return "", fmt.Errorf("failed to remove cart item: %w", err)
	}

	return cartID, nil
}

// UpdateTotal persists the recomputed cached cart total
func (r *CartRepository) UpdateTotal(cartID string, total decimal.Decimal) error {
	_, err := r.db.Exec(`
		UPDATE carts
		SET total_price = $1, updated_at = NOW()
		WHERE id = $2`, total, cartID)
	if err != nil {
		return fmt.Errorf("failed to update cart total: %w", err)
	}
	return nil
}

// DeleteByUser removes the user's cart. Idempotent.
func (r *CartRepository) DeleteByUser(userID string) error {
	if _, err := r.db.Exec("DELETE FROM carts WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// DeleteByID removes a cart by identity. Idempotent, used by fulfillment.
func (r *CartRepository) DeleteByID(cartID string) error {
	if _, err := r.db.Exec("DELETE FROM carts WHERE id = $1", cartID); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
