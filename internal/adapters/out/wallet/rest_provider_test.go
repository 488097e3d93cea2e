// internal/adapters/out/wallet/rest_provider_test.go
package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWalletAPI stands in for the provider's OAuth + orders REST surface.
type fakeWalletAPI struct {
	t *testing.T

	tokenCalls    int64
	captureStatus string

	lastOrderBody map[string]any
}

func (f *fakeWalletAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.tokenCalls, 1)

		user, pass, ok := r.BasicAuth()
		if !ok || user != "client-id" || pass != "client-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"expires_in":   3600,
		})
	})

	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&f.lastOrderBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "ORD-42"})
	})

	mux.HandleFunc("/v2/checkout/orders/ORD-42/capture", func(w http.ResponseWriter, r *http.Request) {
		status := f.captureStatus
		if status == "" {
			status = "COMPLETED"
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	})

	return mux
}

func newTestProvider(t *testing.T) (*RESTProvider, *fakeWalletAPI) {
	t.Helper()

	api := &fakeWalletAPI{t: t}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	p, err := NewRESTProvider(srv.URL, "client-id", "client-secret")
	require.NoError(t, err)
	return p, api
}

func TestRESTProvider_CreateOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	p, api := newTestProvider(t)

	id, err := p.CreateOrder(ctx, "35.00")
	require.NoError(t, err)
	assert.Equal(t, "ORD-42", id)

	units, ok := api.lastOrderBody["purchase_units"].([]any)
	require.True(t, ok)
	require.Len(t, units, 1)
	amount := units[0].(map[string]any)["amount"].(map[string]any)
	assert.Equal(t, "USD", amount["currency_code"])
	assert.Equal(t, "35.00", amount["value"])
	assert.Equal(t, "CAPTURE", api.lastOrderBody["intent"])
}

func TestRESTProvider_CaptureOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	p, api := newTestProvider(t)
	require.NoError(t, p.CaptureOrder(ctx, "ORD-42"))

	api.captureStatus = "DECLINED"
	err := p.CaptureOrder(ctx, "ORD-42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DECLINED")
}

func TestRESTProvider_TokenIsCached(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	p, api := newTestProvider(t)

	_, err := p.CreateOrder(ctx, "10.00")
	require.NoError(t, err)
	_, err = p.CreateOrder(ctx, "10.00")
	require.NoError(t, err)
	require.NoError(t, p.CaptureOrder(ctx, "ORD-42"))

	assert.EqualValues(t, 1, atomic.LoadInt64(&api.tokenCalls))
}

func TestRESTProvider_ConstructorValidation(t *testing.T) {
	t.Parallel()

	_, err := NewRESTProvider("", "id", "secret")
	assert.Error(t, err)
	_, err = NewRESTProvider("https://api.example.com", "", "secret")
	assert.Error(t, err)
	_, err = NewRESTProvider("https://api.example.com", "id", "")
	assert.Error(t, err)
}
