package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"souq/internal/models"
	"souq/internal/services"
)

// WishlistHandler handles wishlist operations
type WishlistHandler struct {
	wishlistService services.WishlistServiceInterface
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService services.WishlistServiceInterface) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

type wishlistRequest struct {
	ProductID string `json:"product_id"`
}

// Add handles POST /api/v1/wishlist
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, models.ErrForbidden)
		return
	}

	var req wishlistRequest
	if err := decodeJSON(r, &req); err != nil || req.ProductID == "" {
		writeError(w, http.StatusBadRequest, models.ErrInvalidInput)
		return
	}

	if err := h.wishlistService.Add(userID, req.ProductID); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Product added to wishlist",
	})
}

// Remove handles DELETE /api/v1/wishlist/{productID}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, models.ErrForbidden)
		return
	}

	if err := h.wishlistService.Remove(userID, chi.URLParam(r, "productID")); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// List handles GET /api/v1/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, models.ErrForbidden)
		return
	}

	products, err := h.wishlistService.List(userID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"results": len(products),
		"data":    products,
	})
}
