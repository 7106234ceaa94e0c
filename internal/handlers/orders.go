package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"souq/internal/models"
	"souq/internal/services"
)

// OrderHandler handles order read operations
type OrderHandler struct {
	orderService services.OrderServiceInterface
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService services.OrderServiceInterface) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrders handles GET /api/v1/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, models.ErrForbidden)
		return
	}

	orders, err := h.orderService.ListUserOrders(userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"results": len(orders),
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/{orderID}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, models.ErrForbidden)
		return
	}

	order, err := h.orderService.GetOrder(chi.URLParam(r, "orderID"), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   order,
	})
}
