package repositories

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"souq/internal/models"
)

// OrderRepository handles order data operations. Orders are append-only:
// the fulfillment pipeline only ever inserts and reads.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts an order keyed by its payment session reference. The
// insert and the existence check are a single atomic statement: ON CONFLICT
// on the session_reference uniqueness constraint makes a duplicate delivery
// lose the race cleanly. Returns the stored order and whether this call
// inserted it; created == false means the session was already fulfilled.
func (r *OrderRepository) Create(req *models.OrderCreateRequest) (*models.Order, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	order := &models.Order{
		UserID:           req.UserID,
		SessionReference: req.SessionReference,
		ShippingAddress:  req.ShippingAddress,
		TotalPrice:       req.TotalPrice,
		PaidAt:           req.PaidAt,
	}

	err = tx.QueryRow(`
		INSERT INTO orders (id, user_id, session_reference, total_price,
			ship_details, ship_phone, ship_city, ship_postal_code, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (session_reference) DO NOTHING
		RETURNING id, created_at`,
		uuid.NewString(),
		req.UserID,
		req.SessionReference,
		req.TotalPrice,
		req.ShippingAddress.Details,
		req.ShippingAddress.Phone,
		req.ShippingAddress.City,
		req.ShippingAddress.PostalCode,
		req.PaidAt,
	).Scan(&order.ID, &order.CreatedAt)

	if err == sql.ErrNoRows {
		// Lost the insert race or this is a redelivery: the existing
		// order is authoritative.
		existing, lookupErr := r.GetBySessionReference(req.SessionReference)
		if lookupErr != nil {
			return nil, false, lookupErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range req.Items {
		itemID := item.ID
		if itemID == "" {
			itemID = uuid.NewString()
		}
		_, err = tx.Exec(`
			INSERT INTO order_items (id, order_id, product_id, sale_price, rental_total)
			VALUES ($1, $2, $3, $4, $5)`,
			itemID, order.ID, item.ProductID, item.SalePrice, item.RentalTotal)
		if err != nil {
			return nil, false, fmt.Errorf("failed to create order item: %w", err)
		}
		order.Items = append(order.Items, models.OrderItem{
			ID:          itemID,
			ProductID:   item.ProductID,
			SalePrice:   item.SalePrice,
			RentalTotal: item.RentalTotal,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit order creation: %w", err)
	}

	return order, true, nil
}

// GetBySessionReference retrieves an order by its payment session reference
func (r *OrderRepository) GetBySessionReference(reference string) (*models.Order, error) {
	return r.getOrder("session_reference", reference)
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(id string) (*models.Order, error) {
	return r.getOrder("id", id)
}

func (r *OrderRepository) getOrder(column, value string) (*models.Order, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, session_reference, total_price,
			ship_details, ship_phone, ship_city, ship_postal_code,
			paid_at, created_at
		FROM orders
		WHERE %s = $1`, column)

	order := &models.Order{}
	err := r.db.QueryRow(query, value).Scan(
		&order.ID,
		&order.UserID,
		&order.SessionReference,
		&order.TotalPrice,
		&order.ShippingAddress.Details,
		&order.ShippingAddress.Phone,
		&order.ShippingAddress.City,
		&order.ShippingAddress.PostalCode,
		&order.PaidAt,
		&order.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.getItems(order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *OrderRepository) getItems(orderID string) ([]models.OrderItem, error) {
	rows, err := r.db.Query(`
		SELECT id, product_id, sale_price, rental_total
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.SalePrice, &item.RentalTotal); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// ListByUser retrieves a user's orders, newest first
func (r *OrderRepository) ListByUser(userID string) ([]*models.Order, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, session_reference, total_price,
			ship_details, ship_phone, ship_city, ship_postal_code,
			paid_at, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.SessionReference,
			&order.TotalPrice,
			&order.ShippingAddress.Details,
			&order.ShippingAddress.Phone,
			&order.ShippingAddress.City,
			&order.ShippingAddress.PostalCode,
			&order.PaidAt,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		items, err := r.getItems(order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}

	return orders, nil
}
