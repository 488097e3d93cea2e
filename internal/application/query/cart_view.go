// internal/application/query/cart_view.go
package query

import (
	"context"
	"errors"
	"math"
	"strings"

	"heavendesigns/internal/application/query/dto"
	cartdom "heavendesigns/internal/domain/cart"
)

// CartReader abstracts the cart store for the read side.
type CartReader interface {
	GetCart(ctx context.Context, cartKey string) ([]cartdom.LineItem, error)
}

// CartViewQuery projects the current store snapshot to its display
// representation. Pure projection with no owned state, re-entrant and
// idempotent: two calls with no intervening mutation produce identical output.
type CartViewQuery struct {
	Carts CartReader
}

func NewCartViewQuery(carts CartReader) *CartViewQuery {
	return &CartViewQuery{Carts: carts}
}

func (q *CartViewQuery) Get(ctx context.Context, cartKey string) (dto.CartViewDTO, error) {
	if q == nil || q.Carts == nil {
		return dto.CartViewDTO{}, errors.New("cart_view: cart reader is nil")
	}

	key := strings.TrimSpace(cartKey)
	if key == "" {
		return dto.CartViewDTO{}, errors.New("cart_view: cartKey is required")
	}

	items, err := q.Carts.GetCart(ctx, key)
	if err != nil {
		return dto.CartViewDTO{}, err
	}

	return Project(key, items), nil
}

// Project computes the view DTO from a line item snapshot.
func Project(cartKey string, items []cartdom.LineItem) dto.CartViewDTO {
	out := dto.CartViewDTO{
		CartKey:   cartKey,
		LineItems: make([]dto.LineItemDTO, 0, len(items)),
	}

	for _, it := range items {
		sub := it.Price * float64(it.Quantity)
		out.LineItems = append(out.LineItems, dto.LineItemDTO{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Subtotal: roundCents(sub),
		})
		out.ItemCount += it.Quantity
		out.TotalAmount += sub
	}

	out.TotalAmount = roundCents(out.TotalAmount)
	c := cartdom.Cart{Items: items}
	out.TotalDisplay = c.TotalDisplay()
	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
