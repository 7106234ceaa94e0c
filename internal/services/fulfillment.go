package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"souq/internal/models"
)

// FulfillmentService turns a completed payment session into an order plus
// its side effects: products marked unavailable and the cart removed. The
// processor delivers completion events at least once, so every step here is
// safe to re-apply; the one write that must not repeat, order creation,
// is an atomic insert-if-absent keyed by the session reference.
//
// There is no rollback state. A failure mid-pipeline returns an error, the
// webhook handler responds non-2xx, and the processor's redelivery drives
// the pipeline to convergence.
type FulfillmentService struct {
	cartRepo    CartRepository
	orderRepo   OrderRepository
	productRepo ProductRepository
	userRepo    UserRepository
}

// NewFulfillmentService creates a new fulfillment service
func NewFulfillmentService(cartRepo CartRepository, orderRepo OrderRepository, productRepo ProductRepository, userRepo UserRepository) *FulfillmentService {
	return &FulfillmentService{
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// HandleEvent processes a signature-verified webhook delivery. Event kinds
// other than checkout completion are acknowledged without side effects.
func (s *FulfillmentService) HandleEvent(event *WebhookEvent) error {
	if event.Event != EventCheckoutCompleted {
		return nil
	}
	return s.fulfill(&event.Data)
}

func (s *FulfillmentService) fulfill(session *CompletedSession) error {
	cartID := session.Reference

	cart, err := s.cartRepo.GetByID(cartID)
	if errors.Is(err, models.ErrCartNotFound) {
		// The cart is gone, so a previous delivery got at least as far as
		// clearing it. The order is the remaining record; re-apply the
		// side effects from its snapshot and acknowledge.
		order, lookupErr := s.orderRepo.GetBySessionReference(cartID)
		if lookupErr != nil {
			return fmt.Errorf("no cart and no order for session %s: %w", cartID, lookupErr)
		}
		return s.applySideEffects(order, cartID)
	}
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(session.CustomerEmail)
	if err != nil {
		return fmt.Errorf("failed to resolve purchaser %q: %w", session.CustomerEmail, err)
	}

	items := make([]models.OrderItem, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = models.OrderItem{
			ProductID:   item.ProductID,
			SalePrice:   item.SalePrice,
			RentalTotal: item.RentalTotal,
		}
	}

	// The session, not the cart's cached total, is authoritative for the
	// charged amount: the cart could have changed between session creation
	// and payment.
	order, created, err := s.orderRepo.Create(&models.OrderCreateRequest{
		UserID:           user.ID,
		SessionReference: cartID,
		Items:            items,
		ShippingAddress:  models.ShippingAddressFromMetadata(session.Metadata),
		TotalPrice:       MajorUnits(session.AmountTotal),
		PaidAt:           time.Now(),
	})
	if err != nil {
		return err
	}
	if !created {
		log.Printf("duplicate delivery for session %s: order %s already exists", cartID, order.ID)
	}

	return s.applySideEffects(order, cartID)
}

// applySideEffects marks every ordered product unavailable and removes the
// cart. Both writes are idempotent and always run after order creation,
// including on duplicate deliveries.
func (s *FulfillmentService) applySideEffects(order *models.Order, cartID string) error {
	productIDs := make([]string, len(order.Items))
	for i, item := range order.Items {
		productIDs[i] = item.ProductID
	}

	if err := s.productRepo.MarkUnavailable(productIDs); err != nil {
		return fmt.Errorf("failed to update availability for order %s: %w", order.ID, err)
	}

	if err := s.cartRepo.DeleteByID(cartID); err != nil {
		return fmt.Errorf("failed to clear cart %s: %w", cartID, err)
	}

	return nil
}
