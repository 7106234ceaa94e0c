package handlers

import (
	"io"
	"log"
	"net/http"

	"souq/internal/models"
	"souq/internal/services"
)

// SignatureHeader carries the processor's HMAC over the request body
const SignatureHeader = "X-Payment-Signature"

// WebhookHandler receives payment processor notifications. The body is
// read raw and handed to signature verification byte for byte; parsing it
// first would invalidate the signature.
type WebhookHandler struct {
	verifier    services.WebhookVerifier
	fulfillment services.FulfillmentServiceInterface
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(verifier services.WebhookVerifier, fulfillment services.FulfillmentServiceInterface) *WebhookHandler {
	return &WebhookHandler{
		verifier:    verifier,
		fulfillment: fulfillment,
	}
}

// HandleWebhook handles POST /api/v1/webhook. A 400 on a bad signature
// advances no state; a non-2xx on a store failure makes the processor
// redeliver, which the fulfillment pipeline's idempotency absorbs.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get(SignatureHeader)
	if !h.verifier.VerifyWebhookSignature(payload, signature) {
		log.Printf("webhook rejected: signature mismatch from %s", r.RemoteAddr)
		writeError(w, http.StatusBadRequest, models.ErrInvalidSignature)
		return
	}

	event, err := h.verifier.ParseWebhookEvent(payload)
	if err != nil {
		log.Printf("webhook rejected: %v", err)
		http.Error(w, "malformed event", http.StatusBadRequest)
		return
	}

	if err := h.fulfillment.HandleEvent(event); err != nil {
		// Redelivery is the recovery path; report failure so it happens.
		log.Printf("fulfillment failed for event %s: %v", event.Event, err)
		http.Error(w, "fulfillment failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
