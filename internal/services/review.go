package services

import (
	"fmt"

	"github.com/google/uuid"

	"souq/internal/models"
)

// ReviewService handles reviews. Every review mutation is followed by an
// explicit recompute of the product's rating aggregate, so the dependency
// is visible in the call graph instead of hiding in store hooks.
type ReviewService struct {
	reviewRepo  ReviewRepository
	productRepo ProductRepository
}

// NewReviewService creates a new review service
func NewReviewService(reviewRepo ReviewRepository, productRepo ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// CreateReview stores a review and refreshes the product's rating aggregate
func (s *ReviewService) CreateReview(userID, productID string, rating int, title string) (*models.Review, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Title:     title,
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	if err := s.productRepo.RecomputeRating(productID); err != nil {
		return nil, fmt.Errorf("review saved but rating recompute failed: %w", err)
	}

	return review, nil
}

// DeleteReview removes a user's review and refreshes the aggregate
func (s *ReviewService) DeleteReview(userID, reviewID string) error {
	productID, err := s.reviewRepo.Delete(reviewID, userID)
	if err != nil {
		return err
	}

	if err := s.productRepo.RecomputeRating(productID); err != nil {
		return fmt.Errorf("review deleted but rating recompute failed: %w", err)
	}

	return nil
}

// ListProductReviews retrieves a product's reviews
func (s *ReviewService) ListProductReviews(productID string) ([]*models.Review, error) {
	return s.reviewRepo.ListByProduct(productID)
}
