package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"souq/internal/models"
	"souq/internal/services"
)

// CheckoutHandler handles checkout session initiation
type CheckoutHandler struct {
	checkoutService services.CheckoutServiceInterface
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService services.CheckoutServiceInterface) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// InitiateSession handles POST /api/v1/checkout-session/{cartID}
func (h *CheckoutHandler) InitiateSession(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")

	var address models.ShippingAddress
	if err := decodeJSON(r, &address); err != nil {
		writeError(w, http.StatusBadRequest, models.ErrInvalidInput)
		return
	}

	session, err := h.checkoutService.InitiateSession(cartID, address)
	if err != nil {
		if errors.Is(err, services.ErrProcessor) {
			// Surface the processor's failure unmodified; nothing was
			// persisted, so there is nothing to compensate.
			log.Printf("checkout session failed for cart %s: %v", cartID, err)
			writeError(w, http.StatusBadGateway, err)
			return
		}
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"session": session,
	})
}
