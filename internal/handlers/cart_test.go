package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"souq/internal/models"
)

type fakeCartService struct {
	cart       *models.Cart
	err        error
	cleared    []string
	addCalls   int
	removeCall string
}

func (f *fakeCartService) AddItem(userID, productID string) (*models.Cart, error) {
	f.addCalls++
	return f.cart, f.err
}

func (f *fakeCartService) RemoveItem(userID, itemID string) (*models.Cart, error) {
	f.removeCall = itemID
	return f.cart, f.err
}

func (f *fakeCartService) GetCart(userID string) (*models.Cart, error) {
	return f.cart, f.err
}

func (f *fakeCartService) ClearCart(userID string) error {
	f.cleared = append(f.cleared, userID)
	return f.err
}

func sampleCart() *models.Cart {
	return &models.Cart{
		ID:     "cart-1",
		UserID: "user-1",
		Items: []models.CartItem{
			{ID: "item-1", ProductID: "prod-1", SalePrice: decimal.NewNullDecimal(decimal.RequireFromString("250.50"))},
		},
		TotalPrice: decimal.RequireFromString("250.50"),
	}
}

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := &fakeCartService{cart: sampleCart()}
		handler := NewCartHandler(service)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", bytes.NewBufferString(`{"product_id":"prod-1"}`))
		req.Header.Set(UserIDHeader, "user-1")
		recorder := httptest.NewRecorder()
		handler.AddItem(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"num_of_cart_items":1`)
		assert.Equal(t, 1, service.addCalls)
	})

	t.Run("missing user header is unauthorized", func(t *testing.T) {
		service := &fakeCartService{cart: sampleCart()}
		handler := NewCartHandler(service)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", bytes.NewBufferString(`{"product_id":"prod-1"}`))
		recorder := httptest.NewRecorder()
		handler.AddItem(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Zero(t, service.addCalls)
	})

	t.Run("empty product id is a bad request", func(t *testing.T) {
		handler := NewCartHandler(&fakeCartService{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", bytes.NewBufferString(`{}`))
		req.Header.Set(UserIDHeader, "user-1")
		recorder := httptest.NewRecorder()
		handler.AddItem(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unknown product is NotFound", func(t *testing.T) {
		handler := NewCartHandler(&fakeCartService{err: models.ErrProductNotFound})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", bytes.NewBufferString(`{"product_id":"prod-x"}`))
		req.Header.Set(UserIDHeader, "user-1")
		recorder := httptest.NewRecorder()
		handler.AddItem(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("duplicate product is a conflict", func(t *testing.T) {
		handler := NewCartHandler(&fakeCartService{err: models.ErrDuplicateCartItem})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart", bytes.NewBufferString(`{"product_id":"prod-1"}`))
		req.Header.Set(UserIDHeader, "user-1")
		recorder := httptest.NewRecorder()
		handler.AddItem(recorder, req)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestCartHandler_RemoveItem(t *testing.T) {
	service := &fakeCartService{cart: sampleCart()}
	handler := NewCartHandler(service)

	router := chi.NewRouter()
	router.Delete("/api/v1/cart/items/{itemID}", handler.RemoveItem)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/item-1", nil)
	req.Header.Set(UserIDHeader, "user-1")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "item-1", service.removeCall)
}

func TestCartHandler_GetCart_NotFound(t *testing.T) {
	handler := NewCartHandler(&fakeCartService{err: models.ErrCartNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(UserIDHeader, "user-1")
	recorder := httptest.NewRecorder()
	handler.GetCart(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCartHandler_ClearCart(t *testing.T) {
	service := &fakeCartService{}
	handler := NewCartHandler(service)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	req.Header.Set(UserIDHeader, "user-1")
	recorder := httptest.NewRecorder()
	handler.ClearCart(recorder, req)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, []string{"user-1"}, service.cleared)
}
