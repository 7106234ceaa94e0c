package services

import (
	"github.com/shopspring/decimal"

	"souq/internal/models"
)

// Repository interfaces consumed by the services. The concrete
// implementations live in internal/repositories.

// CartRepository interface for cart data operations
type CartRepository interface {
	GetByUser(userID string) (*models.Cart, error)
	GetByID(cartID string) (*models.Cart, error)
	AddItem(userID string, item models.CartItem) (string, error)
	RemoveItem(userID, itemID string) (string, error)
	UpdateTotal(cartID string, total decimal.Decimal) error
	DeleteByUser(userID string) error
	DeleteByID(cartID string) error
}

// ProductRepository interface for product data operations
type ProductRepository interface {
	GetByID(id string) (*models.Product, error)
	MarkUnavailable(productIDs []string) error
	RecomputeRating(productID string) error
}

// OrderRepository interface for order data operations
type OrderRepository interface {
	Create(req *models.OrderCreateRequest) (*models.Order, bool, error)
	GetBySessionReference(reference string) (*models.Order, error)
	GetByID(id string) (*models.Order, error)
	ListByUser(userID string) ([]*models.Order, error)
}

// UserRepository interface for user lookups
type UserRepository interface {
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

// ReviewRepository interface for review data operations
type ReviewRepository interface {
	Create(review *models.Review) error
	Delete(reviewID, userID string) (string, error)
	ListByProduct(productID string) ([]*models.Review, error)
}

// WishlistRepository interface for wishlist data operations
type WishlistRepository interface {
	Add(userID, productID string) error
	Remove(userID, productID string) error
	List(userID string) ([]*models.Product, error)
}

// PaymentProvider is the outbound contract with the payment processor
type PaymentProvider interface {
	InitializeSession(req *SessionRequest) (*SessionResponse, error)
}

// WebhookVerifier authenticates and decodes inbound processor deliveries
type WebhookVerifier interface {
	VerifyWebhookSignature(payload []byte, signature string) bool
	ParseWebhookEvent(payload []byte) (*WebhookEvent, error)
}

// Service interfaces consumed by the HTTP handlers.

// CartServiceInterface defines cart operations
type CartServiceInterface interface {
	AddItem(userID, productID string) (*models.Cart, error)
	RemoveItem(userID, itemID string) (*models.Cart, error)
	GetCart(userID string) (*models.Cart, error)
	ClearCart(userID string) error
}

// CheckoutServiceInterface defines checkout session initiation
type CheckoutServiceInterface interface {
	InitiateSession(cartID string, address models.ShippingAddress) (*CheckoutSession, error)
}

// FulfillmentServiceInterface defines webhook-driven fulfillment
type FulfillmentServiceInterface interface {
	HandleEvent(event *WebhookEvent) error
}

// OrderServiceInterface defines order read operations
type OrderServiceInterface interface {
	ListUserOrders(userID string) ([]*models.Order, error)
	GetOrder(orderID, requestingUserID string) (*models.Order, error)
}

// ReviewServiceInterface defines review operations
type ReviewServiceInterface interface {
	CreateReview(userID, productID string, rating int, title string) (*models.Review, error)
	DeleteReview(userID, reviewID string) error
	ListProductReviews(productID string) ([]*models.Review, error)
}

// WishlistServiceInterface defines wishlist operations
type WishlistServiceInterface interface {
	Add(userID, productID string) error
	Remove(userID, productID string) error
	List(userID string) ([]*models.Product, error)
}
