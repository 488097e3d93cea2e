// internal/adapters/in/http/webhook/stripe_handler.go
package webhook

import (
	"io"
	"log"
	"net/http"
	"time"

	"heavendesigns/internal/adapters/out/stripecheckout"
	usecase "heavendesigns/internal/application/usecase"
)

const maxPayloadSize = 1 << 16 // 64KB, webhook events are small

// StripeHandler serves POST /webhooks/stripe: the provider's signed
// completion callback for hosted checkout sessions.
//
// Only checkout.session.completed acts on a cart; everything else is
// acknowledged and dropped so the provider stops retrying.
type StripeHandler struct {
	verifier *stripecheckout.EventVerifier
	checkout *usecase.CheckoutUsecase
}

func NewStripeHandler(verifier *stripecheckout.EventVerifier, checkout *usecase.CheckoutUsecase) http.Handler {
	return &StripeHandler{verifier: verifier, checkout: checkout}
}

func (h *StripeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.verifier == nil || h.checkout == nil {
		log.Printf("[stripe_webhook] exit status=500 reason=handler not configured")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadSize))
	_ = r.Body.Close()
	if err != nil {
		log.Printf("[stripe_webhook] exit status=400 reason=body read err=%v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ev, err := h.verifier.VerifyAndParse(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		log.Printf("[stripe_webhook] exit status=400 reason=verify err=%v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if ev == nil || !ev.Completed {
		// unhandled event type: ack so the provider stops retrying
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if ev.CartRef == "" {
		// stateless session: nothing server-side to clear
		log.Printf("[stripe_webhook] completed without cartRef elapsed=%s", time.Since(start))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.checkout.CompleteHostedCheckout(r.Context(), ev.CartRef, ev.PayerEmail); err != nil {
		// 500 so the provider retries the delivery
		log.Printf("[stripe_webhook] complete failed cartRef=%q err=%v", ev.CartRef, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	log.Printf("[stripe_webhook] completed cartRef=%q elapsed=%s", ev.CartRef, time.Since(start))
	w.WriteHeader(http.StatusNoContent)
}
