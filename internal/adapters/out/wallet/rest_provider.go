// internal/adapters/out/wallet/rest_provider.go
package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	usecase "heavendesigns/internal/application/usecase"
)

// RESTProvider implements usecase.WalletProvider against a wallet provider's
// REST orders API (create order / capture order, OAuth client credentials).
// The widget itself runs in the browser; this adapter backs its callbacks.
type RESTProvider struct {
	baseURL      string
	clientID     string
	clientSecret string
	http         *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewRESTProvider(baseURL, clientID, clientSecret string) (*RESTProvider, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, errors.New("wallet: base url is empty")
	}
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(clientSecret) == "" {
		return nil, errors.New("wallet: client credentials are empty")
	}

	return &RESTProvider{
		baseURL:      base,
		clientID:     strings.TrimSpace(clientID),
		clientSecret: strings.TrimSpace(clientSecret),
		http:         &http.Client{Timeout: 15 * time.Second},
	}, nil
}

var _ usecase.WalletProvider = (*RESTProvider)(nil)

// CreateOrder registers a capture-intent order for amount (two-decimal
// string, USD) and returns the provider order id.
func (p *RESTProvider) CreateOrder(ctx context.Context, amount string) (string, error) {
	body := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{"amount": map[string]string{"currency_code": "USD", "value": amount}},
		},
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := p.doJSON(ctx, http.MethodPost, "/v2/checkout/orders", body, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.ID) == "" {
		return "", errors.New("wallet: create order response has no id")
	}
	return out.ID, nil
}

// CaptureOrder captures a previously created order.
func (p *RESTProvider) CaptureOrder(ctx context.Context, orderID string) error {
	oid := url.PathEscape(strings.TrimSpace(orderID))
	if oid == "" {
		return errors.New("wallet: orderID is empty")
	}

	var out struct {
		Status string `json:"status"`
	}
	if err := p.doJSON(ctx, http.MethodPost, "/v2/checkout/orders/"+oid+"/capture", nil, &out); err != nil {
		return err
	}
	if s := strings.ToUpper(strings.TrimSpace(out.Status)); s != "" && s != "COMPLETED" {
		return fmt.Errorf("wallet: capture ended in status %s", s)
	}
	return nil
}

func (p *RESTProvider) doJSON(ctx context.Context, method, path string, body any, out any) error {
	token, err := p.token(ctx)
	if err != nil {
		return err
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("wallet: %s %s failed with status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// token returns a cached client-credentials access token, refreshing it
// shortly before expiry.
func (p *RESTProvider) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.tokenExpiry.Add(-30*time.Second)) {
		return p.accessToken, nil
	}

	form := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/oauth2/token", form)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(p.clientID, p.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("wallet: token request failed with status %d", resp.StatusCode)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", err
	}
	if strings.TrimSpace(tok.AccessToken) == "" {
		return "", errors.New("wallet: token response has no access_token")
	}

	p.accessToken = tok.AccessToken
	p.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return p.accessToken, nil
}
