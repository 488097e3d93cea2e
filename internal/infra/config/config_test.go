// internal/infra/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "file", cfg.CartBackend)
	assert.Equal(t, "./data/carts", cfg.CartDir)
	assert.Equal(t, "id", cfg.CartKeyStrategy)
	assert.Equal(t, "carts", cfg.CartsCollection)
	assert.Equal(t, "http://localhost:8080/success.html", cfg.CheckoutSuccessURL)
	assert.Equal(t, "http://localhost:8080/cart.html", cfg.CheckoutCancelURL)
	assert.Equal(t, "*", cfg.AllowedOrigin)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CART_BACKEND", "postgres")
	t.Setenv("SITE_BASE_URL", "https://shop.example.com/")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.CartBackend)
	assert.Equal(t, "https://shop.example.com/success.html", cfg.CheckoutSuccessURL)
	assert.Equal(t, "https://shop.example.com/cart.html", cfg.CheckoutCancelURL)
}

func TestLoad_ExplicitCheckoutURLsWin(t *testing.T) {
	t.Setenv("SITE_BASE_URL", "https://shop.example.com")
	t.Setenv("CHECKOUT_SUCCESS_URL", "https://elsewhere.example.com/done")

	cfg := Load()
	assert.Equal(t, "https://elsewhere.example.com/done", cfg.CheckoutSuccessURL)
	assert.Equal(t, "https://shop.example.com/cart.html", cfg.CheckoutCancelURL)
}

func TestGetenvDefault(t *testing.T) {
	t.Setenv("SOME_KEY", "  ")
	assert.Equal(t, "fallback", getenvDefault("SOME_KEY", "fallback"), "blank values fall back")

	t.Setenv("SOME_KEY", " value ")
	assert.Equal(t, "value", getenvDefault("SOME_KEY", "fallback"))
}
