// internal/adapters/out/stripecheckout/webhook.go
package stripecheckout

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
)

// PaymentEvent is the provider-neutral shape the webhook handler consumes.
type PaymentEvent struct {
	// Completed is true only for a confirmed, paid hosted checkout.
	Completed bool
	// CartRef is the cart key bound to the session at creation time
	// (may be empty for sessions created from stateless payloads).
	CartRef string
	// PayerEmail is the customer email reported by the provider, if any.
	PayerEmail string
}

// EventVerifier validates a webhook payload and maps it to a PaymentEvent.
type EventVerifier struct {
	secret string
}

func NewEventVerifier(secret string) (*EventVerifier, error) {
	s := strings.TrimSpace(secret)
	if s == "" {
		return nil, errors.New("stripecheckout: webhook secret is empty")
	}
	return &EventVerifier{secret: s}, nil
}

// VerifyAndParse checks the signature and extracts the event.
// Event types we don't act on come back as (nil, nil).
func (v *EventVerifier) VerifyAndParse(payload []byte, sigHeader string) (*PaymentEvent, error) {
	if v == nil || v.secret == "" {
		return nil, errors.New("stripecheckout: verifier is not configured")
	}

	event, err := webhook.ConstructEvent(payload, sigHeader, v.secret)
	if err != nil {
		return nil, fmt.Errorf("stripe signature invalid: %w", err)
	}

	if event.Type != "checkout.session.completed" {
		return nil, nil
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, fmt.Errorf("stripe event payload: %w", err)
	}

	out := &PaymentEvent{
		Completed: true,
		CartRef:   strings.TrimSpace(s.ClientReferenceID),
	}
	if s.CustomerDetails != nil {
		out.PayerEmail = strings.TrimSpace(s.CustomerDetails.Email)
	}
	return out, nil
}
