// internal/application/usecase/wallet_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
)

var (
	ErrWalletInvalidArgument = errors.New("wallet_usecase: invalid argument")
)

// WalletProvider is the alternative (wallet) checkout capability behind the
// provider-rendered button. Three outcomes reach us: an approved capture,
// a cancellation, or a provider error; the last two never touch the cart.
type WalletProvider interface {
	// CreateOrder registers an order for the given two-decimal amount string
	// and returns the provider's order id.
	CreateOrder(ctx context.Context, amount string) (string, error)
	// CaptureOrder captures a previously created order.
	CaptureOrder(ctx context.Context, orderID string) error
}

// WalletCheckoutUsecase adapts the wallet widget's callbacks to the cart.
//
// The order amount is snapshotted when the button is pressed (CreateOrder),
// not re-read during the interaction. After any cart mutation the widget
// must be re-rendered so a fresh snapshot is bound.
type WalletCheckoutUsecase struct {
	carts    *CartUsecase
	provider WalletProvider
	notifier Notifier

	mail     EmailClient
	mailFrom string
}

func NewWalletCheckoutUsecase(carts *CartUsecase, provider WalletProvider, notifier Notifier) *WalletCheckoutUsecase {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &WalletCheckoutUsecase{carts: carts, provider: provider, notifier: notifier}
}

// WithReceiptMail enables a best-effort receipt email on captured orders.
func (uc *WalletCheckoutUsecase) WithReceiptMail(mail EmailClient, from string) *WalletCheckoutUsecase {
	uc.mail = mail
	uc.mailFrom = strings.TrimSpace(from)
	return uc
}

// CreateOrder snapshots the current cart total and registers a provider
// order for it. Empty carts are blocked with ErrEmptyCart.
func (uc *WalletCheckoutUsecase) CreateOrder(ctx context.Context, cartKey string) (string, error) {
	key := strings.TrimSpace(cartKey)
	if key == "" {
		return "", ErrWalletInvalidArgument
	}
	if uc.provider == nil {
		return "", errors.New("wallet_usecase: provider is not configured")
	}

	items, err := uc.carts.GetCart(ctx, key)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	total, err := uc.carts.Total(ctx, key)
	if err != nil {
		return "", err
	}

	amount := formatAmount(total)
	orderID, err := uc.provider.CreateOrder(ctx, amount)
	if err != nil {
		log.Printf("[wallet_usecase] create order failed key=%q amount=%s err=%v", key, amount, err)
		return "", err
	}

	log.Printf("[wallet_usecase] order created key=%q orderId=%q amount=%s", key, orderID, amount)
	return orderID, nil
}

// Capture confirms the payment with the provider. On success the cart is
// cleared silently (the payment message replaces the "cleared" toast) and a
// receipt goes out when mail is configured. On failure the cart is untouched.
func (uc *WalletCheckoutUsecase) Capture(ctx context.Context, cartKey, orderID, payerEmail string) error {
	key := strings.TrimSpace(cartKey)
	oid := strings.TrimSpace(orderID)
	if key == "" || oid == "" {
		return ErrWalletInvalidArgument
	}
	if uc.provider == nil {
		return errors.New("wallet_usecase: provider is not configured")
	}

	total, err := uc.carts.Total(ctx, key)
	if err != nil {
		return err
	}

	if err := uc.provider.CaptureOrder(ctx, oid); err != nil {
		log.Printf("[wallet_usecase] capture failed key=%q orderId=%q err=%v", key, oid, err)
		return err
	}

	if err := uc.carts.Clear(ctx, key, true); err != nil {
		return err
	}
	uc.notifier.Notify(ctx, "Payment received! Thank you.")

	uc.sendReceipt(ctx, payerEmail, total)
	return nil
}

// Cancel handles a user-cancelled widget interaction: message only,
// cart untouched.
func (uc *WalletCheckoutUsecase) Cancel(ctx context.Context) {
	uc.notifier.Notify(ctx, "Wallet checkout cancelled.")
}

func (uc *WalletCheckoutUsecase) sendReceipt(ctx context.Context, to string, total float64) {
	to = strings.TrimSpace(to)
	if uc.mail == nil || to == "" || uc.mailFrom == "" {
		return
	}

	body := "Thank you for your order!\n\nOrder total: $" + formatAmount(total) + "\n\nA Little Touch of Heaven Designs"
	if err := uc.mail.Send(ctx, uc.mailFrom, to, "Your order is confirmed", body); err != nil {
		log.Printf("[wallet_usecase] receipt mail failed to=%q err=%v", to, err)
	}
}
