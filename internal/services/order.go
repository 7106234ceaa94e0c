package services

import (
	"souq/internal/models"
)

// OrderService exposes read paths over the append-only order store. The
// fulfillment pipeline is the only writer; administrative mutation happens
// elsewhere and never through this service.
type OrderService struct {
	orderRepo OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// ListUserOrders retrieves the requesting user's orders
func (s *OrderService) ListUserOrders(userID string) ([]*models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// GetOrder retrieves an order, restricted to its owner
func (s *OrderService) GetOrder(orderID, requestingUserID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != requestingUserID {
		return nil, models.ErrForbidden
	}

	return order, nil
}
