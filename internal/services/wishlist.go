package services

import (
	"souq/internal/models"
)

// WishlistService handles per-user wishlists
type WishlistService struct {
	wishlistRepo WishlistRepository
	productRepo  ProductRepository
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(wishlistRepo WishlistRepository, productRepo ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// Add puts a product on the user's wishlist. Idempotent.
func (s *WishlistService) Add(userID, productID string) error {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return err
	}
	return s.wishlistRepo.Add(userID, productID)
}

// Remove takes a product off the user's wishlist. Idempotent.
func (s *WishlistService) Remove(userID, productID string) error {
	return s.wishlistRepo.Remove(userID, productID)
}

// List retrieves the user's wishlisted products
func (s *WishlistService) List(userID string) ([]*models.Product, error) {
	return s.wishlistRepo.List(userID)
}
