package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"souq/internal/models"
)

// ErrProcessor marks failures of the outbound payment processor call
var ErrProcessor = errors.New("payment processor error")

// taxRate is the flat checkout tax applied on top of the cart total
var taxRate = decimal.NewFromFloat(0.025)

var oneHundred = decimal.NewFromInt(100)

// CheckoutService initiates payment sessions. It is a pure read plus an
// external call: nothing is persisted locally until the processor reports
// the session complete.
type CheckoutService struct {
	cartRepo    CartRepository
	userRepo    UserRepository
	payment     PaymentProvider
	callbackURL string
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(cartRepo CartRepository, userRepo UserRepository, payment PaymentProvider, callbackURL string) *CheckoutService {
	return &CheckoutService{
		cartRepo:    cartRepo,
		userRepo:    userRepo,
		payment:     payment,
		callbackURL: callbackURL,
	}
}

// CheckoutSession is the caller-facing result of session initiation
type CheckoutSession struct {
	Reference        string `json:"reference"`
	AccessCode       string `json:"access_code"`
	AuthorizationURL string `json:"authorization_url"`
}

// InitiateSession loads the cart, prices the order and requests a payment
// session from the processor. The session's reference is the cart identity,
// which the processor echoes back on completion (the correlation id).
func (s *CheckoutService) InitiateSession(cartID string, address models.ShippingAddress) (*CheckoutSession, error) {
	if err := address.Validate(); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(cart.UserID)
	if err != nil {
		return nil, err
	}

	taxPrice := cart.TotalPrice.Mul(taxRate)
	totalOrderPrice := cart.TotalPrice.Add(taxPrice)
	unitAmount := MinorUnits(totalOrderPrice)

	resp, err := s.payment.InitializeSession(&SessionRequest{
		Email:       user.Email,
		Amount:      unitAmount,
		Currency:    defaultCurrency,
		Reference:   cart.ID,
		CallbackURL: s.callbackURL,
		Metadata:    address.Metadata(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcessor, err)
	}

	return &CheckoutSession{
		Reference:        resp.Data.Reference,
		AccessCode:       resp.Data.AccessCode,
		AuthorizationURL: resp.Data.AuthorizationURL,
	}, nil
}

// MinorUnits converts a major-unit amount to the integer minor units the
// processor expects. Halves round away from zero, so 1000.405 units become
// 100041 minor units. Plain float multiplication is lossy here, which is
// why all price arithmetic stays in decimals until this final step.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(oneHundred).Round(0).IntPart()
}

// MajorUnits converts a processor-reported minor-unit amount back to major
// currency units.
func MajorUnits(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}
