package stripe

import (
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
)

type Event = stripe.Event

const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"

	// MetadataTransactionID is the payment intent metadata key carrying our transaction id.
	MetadataTransactionID = "transaction_id"
)

var ErrWebhookSecretMissing = errors.New("webhook secret not configured")

// Client verifies notifications sent by the payment gateway.
type Client interface {
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
}

type stripeClient struct {
	webhookSecret string
	tolerance     time.Duration
}

func NewStripeClient(webhookSecret string) Client {
	return &stripeClient{webhookSecret: webhookSecret, tolerance: webhook.DefaultTolerance}
}

// VerifyWebhookSignature checks the Stripe-Signature header against the payload and decodes the event.
func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, ErrWebhookSecretMissing
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                s.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return Event{}, fmt.Errorf("invalid webhook: %w", err)
	}

	return event, nil
}

// PaymentIntentRef extracts the payment intent id and our transaction id from a payment_intent event.
func PaymentIntentRef(event Event) (intentID string, transactionID string, err error) {
	if event.Data == nil || event.Data.Object == nil {
		return "", "", errors.New("event has no data object")
	}

	intentID, _ = event.Data.Object["id"].(string)
	if intentID == "" {
		return "", "", errors.New("payment intent id missing from event")
	}

	metadata, _ := event.Data.Object["metadata"].(map[string]any)
	transactionID, _ = metadata[MetadataTransactionID].(string)
	if transactionID == "" {
		return intentID, "", errors.New("transaction id missing from payment intent metadata")
	}

	return intentID, transactionID, nil
}
