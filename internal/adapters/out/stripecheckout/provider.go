// internal/adapters/out/stripecheckout/provider.go
package stripecheckout

import (
	"context"
	"errors"
	"math"
	"strings"

	stripe "github.com/stripe/stripe-go/v74"
	stripeclient "github.com/stripe/stripe-go/v74/client"

	usecase "heavendesigns/internal/application/usecase"
	cartdom "heavendesigns/internal/domain/cart"
)

// Provider implements usecase.CheckoutProvider on the Stripe hosted
// checkout. One session per request: card payment, usd, unit amounts in
// cents (price x 100), fixed success/cancel URLs.
//
// The API key is bound to an owned client; no package-level stripe.Key.
type Provider struct {
	sc         *stripeclient.API
	successURL string
	cancelURL  string
}

func NewProvider(apiKey, successURL, cancelURL string) (*Provider, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, errors.New("stripecheckout: api key is empty")
	}

	sc := &stripeclient.API{}
	sc.Init(key, nil)

	return &Provider{
		sc:         sc,
		successURL: strings.TrimSpace(successURL),
		cancelURL:  strings.TrimSpace(cancelURL),
	}, nil
}

var _ usecase.CheckoutProvider = (*Provider)(nil)

func (p *Provider) CreateSession(ctx context.Context, items []cartdom.LineItem, cartRef string) (string, error) {
	if p == nil || p.sc == nil {
		return "", errors.New("stripecheckout: provider is not configured")
	}
	if len(items) == 0 {
		return "", usecase.ErrEmptyCart
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, it := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(int64(math.Round(it.Price * 100))),
			},
			Quantity: stripe.Int64(int64(it.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(p.successURL),
		CancelURL:          stripe.String(p.cancelURL),
	}
	params.Context = ctx

	if ref := strings.TrimSpace(cartRef); ref != "" {
		params.ClientReferenceID = stripe.String(ref)
	}

	s, err := p.sc.CheckoutSessions.New(params)
	if err != nil {
		var sErr *stripe.Error
		if errors.As(err, &sErr) && sErr.HTTPStatusCode > 0 {
			return "", &usecase.CheckoutSessionError{Status: sErr.HTTPStatusCode}
		}
		return "", err
	}

	return s.ID, nil
}
