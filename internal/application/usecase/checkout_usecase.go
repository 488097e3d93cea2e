// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	cartdom "heavendesigns/internal/domain/cart"
)

var (
	ErrEmptyCart               = errors.New("checkout_usecase: cart is empty")
	ErrCheckoutInvalidArgument = errors.New("checkout_usecase: invalid argument")
)

// CheckoutSessionError reports a non-success response from the checkout
// provider, carrying the upstream status code.
type CheckoutSessionError struct {
	Status int
}

func (e *CheckoutSessionError) Error() string {
	return fmt.Sprintf("checkout session request failed with status %d", e.Status)
}

// CheckoutProvider is the hosted-checkout capability: turn line items into an
// opaque session id that the client redeems on the provider's payment page.
// cartRef travels with the session so the completion webhook can find the
// cart to clear; it may be empty for stateless payloads.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, items []cartdom.LineItem, cartRef string) (string, error)
}

// EmailClient sends plain mail (receipts). Kept minimal on purpose.
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// CheckoutUsecase owns the card-checkout branch: request a session for the
// current cart, and complete the flow when the hosted page reports success.
// The cart is never cleared on session creation, only on confirmed payment.
type CheckoutUsecase struct {
	carts    *CartUsecase
	provider CheckoutProvider
	notifier Notifier

	mail     EmailClient
	mailFrom string
}

func NewCheckoutUsecase(carts *CartUsecase, provider CheckoutProvider, notifier Notifier) *CheckoutUsecase {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &CheckoutUsecase{carts: carts, provider: provider, notifier: notifier}
}

// WithReceiptMail enables a best-effort receipt email on completed payments.
func (uc *CheckoutUsecase) WithReceiptMail(mail EmailClient, from string) *CheckoutUsecase {
	uc.mail = mail
	uc.mailFrom = strings.TrimSpace(from)
	return uc
}

// RequestCheckoutSession reads the cart for cartKey and requests a hosted
// session for it. An empty cart returns ErrEmptyCart (callers block with a
// user-visible message instead of calling). The cart is left untouched.
func (uc *CheckoutUsecase) RequestCheckoutSession(ctx context.Context, cartKey string) (string, error) {
	key := strings.TrimSpace(cartKey)
	if key == "" {
		return "", ErrCheckoutInvalidArgument
	}

	items, err := uc.carts.GetCart(ctx, key)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	return uc.CreateSession(ctx, items, key)
}

// CreateSession forwards already-normalized line items to the provider.
// Used directly by the stateless session endpoint (cart payload in the body).
func (uc *CheckoutUsecase) CreateSession(ctx context.Context, items []cartdom.LineItem, cartRef string) (string, error) {
	if uc.provider == nil {
		return "", errors.New("checkout_usecase: provider is not configured")
	}
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	id, err := uc.provider.CreateSession(ctx, items, cartRef)
	if err != nil {
		log.Printf("[checkout_usecase] create session failed cartRef=%q err=%v", cartRef, err)
		return "", err
	}

	log.Printf("[checkout_usecase] session created cartRef=%q", cartRef)
	return id, nil
}

// CompleteHostedCheckout runs after the hosted flow confirms payment
// (webhook / success-page collaborator): clear the cart silently, notify
// success, and send a receipt when mail is configured. This is the only
// non-explicit path that clears a cart.
func (uc *CheckoutUsecase) CompleteHostedCheckout(ctx context.Context, cartKey, payerEmail string) error {
	key := strings.TrimSpace(cartKey)
	if key == "" {
		return ErrCheckoutInvalidArgument
	}

	total, err := uc.carts.Total(ctx, key)
	if err != nil {
		return err
	}

	if err := uc.carts.Clear(ctx, key, true); err != nil {
		return err
	}
	uc.notifier.Notify(ctx, "Payment received! Thank you.")

	uc.sendReceipt(ctx, payerEmail, total)
	return nil
}

func (uc *CheckoutUsecase) sendReceipt(ctx context.Context, to string, total float64) {
	to = strings.TrimSpace(to)
	if uc.mail == nil || to == "" || uc.mailFrom == "" {
		return
	}

	body := fmt.Sprintf("Thank you for your order!\n\nOrder total: $%.2f\n\nA Little Touch of Heaven Designs", total)
	if err := uc.mail.Send(ctx, uc.mailFrom, to, "Your order is confirmed", body); err != nil {
		// a failed receipt never fails the payment flow
		log.Printf("[checkout_usecase] receipt mail failed to=%q err=%v", to, err)
	}
}
