package models

import "errors"

// Common errors used throughout the application
var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrDuplicateCartItem = errors.New("product is already in cart")
	ErrDuplicateReview   = errors.New("user already reviewed this product")
	ErrReviewNotFound    = errors.New("review not found")
	ErrInvalidSignature  = errors.New("webhook signature mismatch")
	ErrInvalidInput      = errors.New("invalid input")
	ErrForbidden         = errors.New("insufficient permissions")
)
