package services

import (
	"fmt"

	"github.com/google/uuid"

	"souq/internal/models"
)

// CartService handles cart business logic. The cached cart total is derived
// state: it is recomputed from the items after every mutation.
type CartService struct {
	cartRepo    CartRepository
	productRepo ProductRepository
}

// NewCartService creates a new cart service
func NewCartService(cartRepo CartRepository, productRepo ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItem puts a product into the user's cart, creating the cart on first
// use. The item snapshots the product's current sale price or rental total;
// checkout never re-reads the product. Adding a product that is already in
// the cart fails with ErrDuplicateCartItem and leaves the cart unchanged.
func (s *CartService) AddItem(userID, productID string) (*models.Cart, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	item := models.CartItem{
		ID:          uuid.NewString(),
		ProductID:   product.ID,
		SalePrice:   product.SalePrice,
		RentalTotal: product.RentalTotal,
	}

	cartID, err := s.cartRepo.AddItem(userID, item)
	if err != nil {
		return nil, err
	}

	return s.refreshTotal(cartID)
}

// RemoveItem takes an item out of the user's cart. Removing an item that is
// not present succeeds without effect; a missing cart is ErrCartNotFound.
func (s *CartService) RemoveItem(userID, itemID string) (*models.Cart, error) {
	cartID, err := s.cartRepo.RemoveItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	return s.refreshTotal(cartID)
}

// GetCart retrieves the user's cart
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	return s.cartRepo.GetByUser(userID)
}

// ClearCart deletes the user's cart. Idempotent.
func (s *CartService) ClearCart(userID string) error {
	return s.cartRepo.DeleteByUser(userID)
}

// refreshTotal recomputes the cached total from the remaining items and
// persists it when it drifted.
func (s *CartService) refreshTotal(cartID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return nil, err
	}

	total := models.CartTotal(cart.Items)
	if !cart.TotalPrice.Equal(total) {
		if err := s.cartRepo.UpdateTotal(cart.ID, total); err != nil {
			return nil, fmt.Errorf("failed to persist cart total: %w", err)
		}
		cart.TotalPrice = total
	}

	return cart, nil
}
