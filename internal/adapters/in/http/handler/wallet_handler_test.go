// internal/adapters/in/http/handler/wallet_handler_test.go
package handler

import (
	"context"
	"encoding/json"
	"errors"
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

type stubWalletProvider struct {
	orderID    string
	createErr  error
	captureErr error
}

func (p *stubWalletProvider) CreateOrder(context.Context, string) (string, error) {
	if p.createErr != nil {
		return "", p.createErr
	}
	return p.orderID, nil
}

func (p *stubWalletProvider) CaptureOrder(context.Context, string) error {
	return p.captureErr
}

func newWalletTestHandler(provider usecase.WalletProvider) (http.Handler, *usecase.CartUsecase) {
	carts := usecase.NewCartUsecase(storage.NewMemoryBlobStore(), productdom.NewInlineCatalog(), nil, cartdom.KeyByID)
	return NewWalletHandler(usecase.NewWalletCheckoutUsecase(carts, provider, nil)), carts
}

func TestWalletHandler_CreateOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	h, carts := newWalletTestHandler(&stubWalletProvider{orderID: "ORD-9"})
	_, err := carts.AddItem(ctx, "k1", "custom-shirt")
	require.NoError(t, err)

	rec := postJSON(t, h, "/wallet/orders", `{"cartKey":"k1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ORD-9", resp["orderId"])
}

func TestWalletHandler_CreateOrderEmptyCartIs400(t *testing.T) {
	t.Parallel()

	h, _ := newWalletTestHandler(&stubWalletProvider{orderID: "ORD-9"})
	rec := postJSON(t, h, "/wallet/orders", `{"cartKey":"k1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWalletHandler_CaptureClearsCart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	h, carts := newWalletTestHandler(&stubWalletProvider{orderID: "ORD-9"})
	_, err := carts.AddItem(ctx, "k1", "custom-shirt")
	require.NoError(t, err)

	rec := postJSON(t, h, "/wallet/orders/capture", `{"cartKey":"k1","orderId":"ORD-9"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	items, err := carts.GetCart(ctx, "k1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWalletHandler_CaptureFailureIs502AndLeavesCart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	h, carts := newWalletTestHandler(&stubWalletProvider{orderID: "ORD-9", captureErr: errors.New("DECLINED")})
	_, err := carts.AddItem(ctx, "k1", "custom-shirt")
	require.NoError(t, err)

	rec := postJSON(t, h, "/wallet/orders/capture", `{"cartKey":"k1","orderId":"ORD-9"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	items, err := carts.GetCart(ctx, "k1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWalletHandler_Cancel(t *testing.T) {
	t.Parallel()

	h, _ := newWalletTestHandler(&stubWalletProvider{})
	rec := postJSON(t, h, "/wallet/orders/cancel", `{}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestWalletHandler_BadRequests(t *testing.T) {
	t.Parallel()

	h, _ := newWalletTestHandler(&stubWalletProvider{orderID: "ORD-9"})

	rec := postJSON(t, h, "/wallet/orders", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing cartKey")

	rec = postJSON(t, h, "/wallet/orders/capture", `{"cartKey":"k1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing orderId")

	req := httptest.NewRequest(http.MethodGet, "/wallet/orders", strings.NewReader(""))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	rec = postJSON(t, h, "/wallet/unknown", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
