// internal/adapters/in/http/router.go
package http

import (
	"log"
	"net/http"
)

// Deps is the storefront handler set.
type Deps struct {
	Catalog http.Handler

	// /cart + /cart/items
	Cart http.Handler

	// POST /create-checkout-session
	Checkout http.Handler

	// /wallet/orders, /wallet/orders/capture, /wallet/orders/cancel
	Wallet http.Handler

	// POST /webhooks/stripe
	StripeWebhook http.Handler
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead (so a partial
// container never crashes the server).
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers the storefront routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// catalog
	handleSafe(mux, "/catalog", deps.Catalog, "Catalog")
	handleSafe(mux, "/catalog/", deps.Catalog, "Catalog")

	// cart
	handleSafe(mux, "/cart", deps.Cart, "Cart")
	handleSafe(mux, "/cart/", deps.Cart, "Cart")

	// hosted checkout session
	handleSafe(mux, "/create-checkout-session", deps.Checkout, "Checkout")

	// wallet widget callbacks
	handleSafe(mux, "/wallet/orders", deps.Wallet, "Wallet")
	handleSafe(mux, "/wallet/orders/", deps.Wallet, "Wallet")

	// provider webhooks
	handleSafe(mux, "/webhooks/stripe", deps.StripeWebhook, "StripeWebhook")
}
