package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"souq/internal/models"
	"souq/internal/services"
)

type fakeCheckoutService struct {
	session *services.CheckoutSession
	err     error
	cartIDs []string
}

func (f *fakeCheckoutService) InitiateSession(cartID string, address models.ShippingAddress) (*services.CheckoutSession, error) {
	f.cartIDs = append(f.cartIDs, cartID)
	return f.session, f.err
}

func postCheckout(handler *CheckoutHandler, cartID, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Post("/api/v1/checkout-session/{cartID}", handler.InitiateSession)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout-session/"+cartID, bytes.NewBufferString(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

const addressBody = `{"details":"12 Nile St","phone":"0100000000","city":"Cairo"}`

func TestCheckoutHandler_InitiateSession(t *testing.T) {
	t.Run("returns the session", func(t *testing.T) {
		service := &fakeCheckoutService{session: &services.CheckoutSession{
			Reference:        "cart-1",
			AccessCode:       "access-1",
			AuthorizationURL: "https://checkout.example.com/access-1",
		}}
		handler := NewCheckoutHandler(service)

		recorder := postCheckout(handler, "cart-1", addressBody)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "https://checkout.example.com/access-1")
		assert.Equal(t, []string{"cart-1"}, service.cartIDs)
	})

	t.Run("missing cart is NotFound", func(t *testing.T) {
		handler := NewCheckoutHandler(&fakeCheckoutService{err: models.ErrCartNotFound})

		recorder := postCheckout(handler, "cart-missing", addressBody)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("address validation failure is a bad request", func(t *testing.T) {
		handler := NewCheckoutHandler(&fakeCheckoutService{
			err: fmt.Errorf("%w: shipping city is required", models.ErrInvalidInput),
		})

		recorder := postCheckout(handler, "cart-1", `{"details":"12 Nile St","phone":"0100000000"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("processor failure is a bad gateway", func(t *testing.T) {
		handler := NewCheckoutHandler(&fakeCheckoutService{
			err: fmt.Errorf("%w: unauthorized: check API keys", services.ErrProcessor),
		})

		recorder := postCheckout(handler, "cart-1", addressBody)

		assert.Equal(t, http.StatusBadGateway, recorder.Code)
	})
}
