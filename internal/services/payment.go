package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultPaymentBaseURL is the processor's live API endpoint
const defaultPaymentBaseURL = "https://api.paystack.co"

// defaultCurrency is the store currency sent with every session
const defaultCurrency = "EGP"

// EventCheckoutCompleted is the only webhook event kind that triggers
// fulfillment; every other kind is acknowledged without side effects.
const EventCheckoutCompleted = "checkout.session.completed"

// PaymentConfig represents payment processor configuration
type PaymentConfig struct {
	SecretKey   string
	PublicKey   string
	Environment string // "test" or "live"
	BaseURL     string // override for tests; empty selects the live API
	CallbackURL string
}

// PaymentService talks to the external payment processor. The processor is
// the system of record for checkout sessions; this client only creates them
// and verifies what the processor later sends back.
type PaymentService struct {
	config  PaymentConfig
	client  *http.Client
	baseURL string
}

// NewPaymentService creates a new payment processor client
func NewPaymentService(config PaymentConfig) *PaymentService {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultPaymentBaseURL
	}

	return &PaymentService{
		config:  config,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
	}
}

// SessionRequest represents a checkout session initialization request
type SessionRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`    // minor currency units
	Currency    string            `json:"currency"`
	Reference   string            `json:"reference"` // correlation id echoed back on completion
	CallbackURL string            `json:"callback_url"`
	Metadata    map[string]string `json:"metadata"`
}

// SessionResponse represents the response from session initialization
type SessionResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    SessionData `json:"data"`
}

// SessionData contains the session initialization data
type SessionData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// WebhookEvent is a notification delivered by the processor. Deliveries are
// at-least-once: the same event may arrive more than once and in any order.
type WebhookEvent struct {
	Event string           `json:"event"`
	Data  CompletedSession `json:"data"`
}

// CompletedSession carries the authoritative outcome of a paid session.
type CompletedSession struct {
	Reference     string            `json:"reference"`      // correlation id: the cart identity
	AmountTotal   int64             `json:"amount_total"`   // minor currency units, as charged
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

// ProcessorError represents an error response from the payment processor
type ProcessorError struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("payment processor error: %s", e.Message)
}

// InitializeSession creates a checkout session with the payment processor.
// It persists nothing locally; the caller redirects the shopper to the
// returned authorization URL and the processor reports back via webhook.
func (s *PaymentService) InitializeSession(req *SessionRequest) (*SessionResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session request: %w", err)
	}

	initURL := s.baseURL + "/transaction/initialize"
	httpReq, err := http.NewRequest("POST", initURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create session request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+s.config.SecretKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send session request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, s.handleAPIError(resp.StatusCode, bodyBytes)
	}

	var sessionResp SessionResponse
	if err := json.Unmarshal(bodyBytes, &sessionResp); err != nil {
		return nil, fmt.Errorf("failed to decode session response: %w", err)
	}

	if !sessionResp.Status {
		return nil, fmt.Errorf("session initialization failed: %s", sessionResp.Message)
	}

	return &sessionResp, nil
}

// VerifyWebhookSignature verifies a webhook delivery against the shared
// secret. The payload must be the exact raw bytes the processor signed;
// any re-serialization before this point invalidates the signature.
func (s *PaymentService) VerifyWebhookSignature(payload []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(s.config.SecretKey))
	mac.Write(payload)
	expectedSignature := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expectedSignature))
}

// SignWebhookPayload computes the signature the processor would attach to
// payload. Used by tests and the sandbox replay tool.
func (s *PaymentService) SignWebhookPayload(payload []byte) string {
	mac := hmac.New(sha512.New, []byte(s.config.SecretKey))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// ParseWebhookEvent decodes a verified webhook payload
func (s *PaymentService) ParseWebhookEvent(payload []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to decode webhook event: %w", err)
	}
	return &event, nil
}

// handleAPIError handles processor API errors
func (s *PaymentService) handleAPIError(statusCode int, body []byte) error {
	var procErr ProcessorError
	if err := json.Unmarshal(body, &procErr); err != nil {
		return fmt.Errorf("API error (status %d): %s", statusCode, string(body))
	}

	switch statusCode {
	case 400:
		return fmt.Errorf("bad request: %s", procErr.Message)
	case 401:
		return fmt.Errorf("unauthorized: check API keys - %s", procErr.Message)
	case 404:
		return fmt.Errorf("not found: %s", procErr.Message)
	case 422:
		return fmt.Errorf("validation error: %s", procErr.Message)
	default:
		return &procErr
	}
}
