package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"souq/internal/models"
	"souq/internal/services"
)

// ReviewHandler handles product reviews
type ReviewHandler struct {
	reviewService services.ReviewServiceInterface
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService services.ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type createReviewRequest struct {
	Rating int    `json:"rating"`
	Title  string `json:"title"`
}

// CreateReview handles POST /api/v1/products/{productID}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, models.ErrForbidden)
		return
	}

	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, models.ErrInvalidInput)
		return
	}

	review, err := h.reviewService.CreateReview(userID, chi.URLParam(r, "productID"), req.Rating, req.Title)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   review,
	})
}

// ListReviews handles GET /api/v1/products/{productID}/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewService.ListProductReviews(chi.URLParam(r, "productID"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"results": len(reviews),
		"data":    reviews,
	})
}

// DeleteReview handles DELETE /api/v1/reviews/{reviewID}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, models.ErrForbidden)
		return
	}

	if err := h.reviewService.DeleteReview(userID, chi.URLParam(r, "reviewID")); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
