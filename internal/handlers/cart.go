package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"souq/internal/models"
	"souq/internal/services"
)

// CartHandler handles cart operations
type CartHandler struct {
	cartService services.CartServiceInterface
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService services.CartServiceInterface) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

// AddItem handles POST /api/v1/cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, models.ErrForbidden)
		return
	}

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil || req.ProductID == "" {
		writeError(w, http.StatusBadRequest, models.ErrInvalidInput)
		return
	}

	cart, err := h.cartService.AddItem(userID, req.ProductID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "success",
		"message":           "Product added to cart successfully",
		"num_of_cart_items": len(cart.Items),
		"data":              cart,
	})
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, models.ErrForbidden)
		return
	}

	cart, err := h.cartService.GetCart(userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "success",
		"num_of_cart_items": len(cart.Items),
		"data":              cart,
	})
}

// RemoveItem handles DELETE /api/v1/cart/items/{itemID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, models.ErrForbidden)
		return
	}

	itemID := chi.URLParam(r, "itemID")

	cart, err := h.cartService.RemoveItem(userID, itemID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "success",
		"num_of_cart_items": len(cart.Items),
		"data":              cart,
	})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, models.ErrForbidden)
		return
	}

	if err := h.cartService.ClearCart(userID); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
