// internal/adapters/in/http/handler/checkout_handler_test.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heavendesigns/internal/adapters/out/storage"
	usecase "heavendesigns/internal/application/usecase"
	cartdom "heavendesigns/internal/domain/cart"
	productdom "heavendesigns/internal/domain/product"
)

type stubCheckoutProvider struct {
	id      string
	err     error
	items   []cartdom.LineItem
	cartRef string
}

func (p *stubCheckoutProvider) CreateSession(_ context.Context, items []cartdom.LineItem, cartRef string) (string, error) {
	p.items = items
	p.cartRef = cartRef
	if p.err != nil {
		return "", p.err
	}
	return p.id, nil
}

func newCheckoutHandler(provider usecase.CheckoutProvider) http.Handler {
	carts := usecase.NewCartUsecase(storage.NewMemoryBlobStore(), productdom.NewInlineCatalog(), nil, cartdom.KeyByID)
	return NewCheckoutHandler(usecase.NewCheckoutUsecase(carts, provider, nil))
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCheckoutHandler_HappyPath(t *testing.T) {
	t.Parallel()

	provider := &stubCheckoutProvider{id: "cs_test_abc"}
	h := newCheckoutHandler(provider)

	rec := postJSON(t, h, "/create-checkout-session", `{
		"cart": [
			{"name": "Custom Shirt", "price": 20, "quantity": 2},
			{"name": "Custom Hoodie", "price": 35, "quantity": 1}
		]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cs_test_abc", resp["id"])

	require.Len(t, provider.items, 2)
	assert.Equal(t, "custom-shirt", provider.items[0].ID)
	assert.Equal(t, 2, provider.items[0].Quantity)
}

func TestCheckoutHandler_DropsMalformedRecords(t *testing.T) {
	t.Parallel()

	provider := &stubCheckoutProvider{id: "cs_test_abc"}
	h := newCheckoutHandler(provider)

	rec := postJSON(t, h, "/create-checkout-session", `{
		"cart": [
			{"price": 99},
			{"name": "Custom Shirt", "price": 20, "quantity": 0}
		]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, provider.items, 1)
	assert.Equal(t, 1, provider.items[0].Quantity, "zero quantity corrects to 1")
}

func TestCheckoutHandler_EmptyCartIs400(t *testing.T) {
	t.Parallel()

	h := newCheckoutHandler(&stubCheckoutProvider{id: "cs"})

	for _, body := range []string{
		`{"cart": []}`,
		`{}`,
		`{"cart": [{"price": 12}]}`, // all records malformed
	} {
		rec := postJSON(t, h, "/create-checkout-session", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}

func TestCheckoutHandler_InvalidJSONIs400(t *testing.T) {
	t.Parallel()

	h := newCheckoutHandler(&stubCheckoutProvider{id: "cs"})
	rec := postJSON(t, h, "/create-checkout-session", `{nope`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutHandler_ProviderFailureIs502(t *testing.T) {
	t.Parallel()

	provider := &stubCheckoutProvider{err: &usecase.CheckoutSessionError{Status: 503}}
	h := newCheckoutHandler(provider)

	rec := postJSON(t, h, "/create-checkout-session", `{
		"cart": [{"name": "Custom Shirt", "price": 20, "quantity": 1}]
	}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// generic message only; provider detail stays in the logs
	assert.NotContains(t, resp["error"], "503")
}

func TestCheckoutHandler_CartKeyTravelsAsReference(t *testing.T) {
	t.Parallel()

	provider := &stubCheckoutProvider{id: "cs"}
	h := newCheckoutHandler(provider)

	rec := postJSON(t, h, "/create-checkout-session?cartKey=k1", `{
		"cart": [{"name": "Custom Shirt", "price": 20, "quantity": 1}]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "k1", provider.cartRef)
}

func TestCheckoutHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := newCheckoutHandler(&stubCheckoutProvider{id: "cs"})
	req := httptest.NewRequest(http.MethodGet, "/create-checkout-session", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
