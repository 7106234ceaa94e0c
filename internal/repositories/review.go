package repositories

import (
	"database/sql"
	"fmt"

	"souq/internal/models"
)

// ReviewRepository handles review data operations
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review. One review per user per product, enforced by the
// (product_id, user_id) uniqueness constraint.
func (r *ReviewRepository) Create(review *models.Review) error {
	err := r.db.QueryRow(`
		INSERT INTO reviews (id, product_id, user_id, rating, title)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		review.ID, review.ProductID, review.UserID, review.Rating, review.Title,
	).Scan(&review.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateReview
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Delete removes a user's review of a product. Returns the product id so
// the caller can recompute the aggregate.
func (r *ReviewRepository) Delete(reviewID, userID string) (string, error) {
	var productID string
	err := r.db.QueryRow(`
		DELETE FROM reviews
		WHERE id = $1 AND user_id = $2
		RETURNING product_id`, reviewID, userID).Scan(&productID)
	if err == sql.ErrNoRows {
		return "", models.ErrReviewNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to delete review: %w", err)
	}
	return productID, nil
}

// ListByProduct retrieves a product's reviews, newest first
func (r *ReviewRepository) ListByProduct(productID string) ([]*models.Review, error) {
	rows, err := r.db.Query(`
		SELECT id, product_id, user_id, rating, title, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review := &models.Review{}
		if err := rows.Scan(&review.ID, &review.ProductID, &review.UserID,
			&review.Rating, &review.Title, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}
