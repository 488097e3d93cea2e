// internal/adapters/in/http/handler/checkout_handler.go
package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	usecase "heavendesigns/internal/application/usecase"
	cartdom "heavendesigns/internal/domain/cart"
)

// CheckoutHandler serves POST /create-checkout-session: a stateless
// transform from a cart payload to an opaque provider session id.
//
// The payload carries {name, price, quantity} per line item; ids are
// deliberately omitted by the storefront client since this endpoint never
// reads them. Malformed records are dropped, not rejected wholesale.
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) http.Handler {
	return &CheckoutHandler{uc: uc}
}

type checkoutReq struct {
	Cart    []map[string]any `json:"cart"`
	CartKey string           `json:"cartKey"`
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "checkout handler is not configured")
		return
	}

	var req checkoutReq
	if err := readJSON(r, &req); err != nil {
		log.Printf("[checkout_handler] exit status=400 reason=invalid json err=%v", err)
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	items := make([]cartdom.LineItem, 0, len(req.Cart))
	for _, raw := range req.Cart {
		if it := cartdom.NormalizeLineItem(raw); it != nil {
			items = append(items, *it)
		}
	}

	if len(items) == 0 {
		log.Printf("[checkout_handler] exit status=400 reason=empty cart elapsed=%s", time.Since(start))
		writeErr(w, http.StatusBadRequest, "Your cart is empty.")
		return
	}

	cartRef := readCartKey(r, req.CartKey)

	id, err := h.uc.CreateSession(r.Context(), items, cartRef)
	if err != nil {
		var sessErr *usecase.CheckoutSessionError
		if errors.As(err, &sessErr) {
			log.Printf("[checkout_handler] provider status=%d cartRef=%q elapsed=%s", sessErr.Status, cartRef, time.Since(start))
		} else {
			log.Printf("[checkout_handler] provider error cartRef=%q err=%v elapsed=%s", cartRef, err, time.Since(start))
		}
		// generic retry guidance; the cart is untouched either way
		writeErr(w, http.StatusBadGateway, "We couldn't start the card checkout. Please try again later.")
		return
	}

	log.Printf("[checkout_handler] ok items=%d cartRef=%q elapsed=%s", len(items), cartRef, time.Since(start))
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}
