// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	cartdom "heavendesigns/internal/domain/cart"
	productdom "heavendesigns/internal/domain/product"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
)

// Notifier is the user-facing notification side effect (the toast of the
// original storefront). Implementations must be non-blocking best effort.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string) {}

// CartUsecase coordinates cart operations over an injected BlobStore.
//
// Every operation is a single read-normalize-mutate-write cycle. Storage
// failures never propagate: reads fail open to an empty cart, failed writes
// are logged and dropped (the in-memory result is still returned so the
// caller renders a stable state).
type CartUsecase struct {
	store    cartdom.BlobStore
	catalog  *productdom.Catalog
	notifier Notifier
	strategy cartdom.KeyStrategy
}

func NewCartUsecase(store cartdom.BlobStore, catalog *productdom.Catalog, notifier Notifier, strategy cartdom.KeyStrategy) *CartUsecase {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &CartUsecase{
		store:    store,
		catalog:  catalog,
		notifier: notifier,
		strategy: strategy,
	}
}

// Strategy exposes the configured identity-key strategy (handlers derive
// identity keys from request fields with it).
func (uc *CartUsecase) Strategy() cartdom.KeyStrategy {
	return uc.strategy
}

// GetCart returns the normalized, deduplicated current state.
// A read or parse failure yields an empty cart, never an error.
func (uc *CartUsecase) GetCart(ctx context.Context, cartKey string) ([]cartdom.LineItem, error) {
	key := strings.TrimSpace(cartKey)
	if key == "" {
		return nil, ErrCartInvalidArgument
	}

	c := uc.load(ctx, key)
	return c.Items, nil
}

// AddItem looks productID up in the catalog and merges it into the cart.
// Unknown product ids are a no-op (no notification either).
func (uc *CartUsecase) AddItem(ctx context.Context, cartKey, productID string) ([]cartdom.LineItem, error) {
	key := strings.TrimSpace(cartKey)
	pid := strings.TrimSpace(productID)
	if key == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}

	p, ok := uc.catalog.FindByID(pid)
	if !ok {
		log.Printf("[cart_usecase] add-item unknown product id=%q (no-op)", pid)
		c := uc.load(ctx, key)
		return c.Items, nil
	}

	c := uc.load(ctx, key)
	if err := c.Add(cartdom.LineItem{ID: p.ID, Name: p.Name, Price: p.Price, Quantity: 1}); err != nil {
		return nil, err
	}

	uc.save(ctx, key, &c)
	uc.notifier.Notify(ctx, p.Name+" added to cart!")
	return c.Items, nil
}

// RemoveItem deletes the line item matching identity. No-op if absent;
// notifies only when something was actually removed.
func (uc *CartUsecase) RemoveItem(ctx context.Context, cartKey, identity string) ([]cartdom.LineItem, error) {
	key := strings.TrimSpace(cartKey)
	if key == "" || strings.TrimSpace(identity) == "" {
		return nil, ErrCartInvalidArgument
	}

	c := uc.load(ctx, key)
	name, removed := c.Remove(identity)
	if removed {
		uc.save(ctx, key, &c)
		uc.notifier.Notify(ctx, name+" removed from cart.")
	}
	return c.Items, nil
}

// AdjustQuantity adds delta to the target item's quantity. Driving the
// quantity to <= 0 removes the item and is reported as a removal.
func (uc *CartUsecase) AdjustQuantity(ctx context.Context, cartKey, identity string, delta int) ([]cartdom.LineItem, error) {
	key := strings.TrimSpace(cartKey)
	if key == "" || strings.TrimSpace(identity) == "" {
		return nil, ErrCartInvalidArgument
	}
	if delta == 0 {
		c := uc.load(ctx, key)
		return c.Items, nil
	}

	c := uc.load(ctx, key)
	outcome, name := c.AdjustQuantity(identity, delta)

	switch outcome {
	case cartdom.AdjustNoop:
		return c.Items, nil
	case cartdom.AdjustRemoved:
		uc.save(ctx, key, &c)
		uc.notifier.Notify(ctx, name+" removed from cart.")
	default:
		uc.save(ctx, key, &c)
	}
	return c.Items, nil
}

// SetQuantity sets the target item's quantity to an absolute value.
// Non-positive input is corrected to 1; the item is never removed here.
func (uc *CartUsecase) SetQuantity(ctx context.Context, cartKey, identity string, qty int) ([]cartdom.LineItem, error) {
	key := strings.TrimSpace(cartKey)
	if key == "" || strings.TrimSpace(identity) == "" {
		return nil, ErrCartInvalidArgument
	}

	c := uc.load(ctx, key)
	if c.SetQuantity(identity, qty) {
		uc.save(ctx, key, &c)
	}
	return c.Items, nil
}

// Clear empties the cart unconditionally. silent suppresses the user-facing
// notification (used after a confirmed payment, where the payment message
// already covers it).
func (uc *CartUsecase) Clear(ctx context.Context, cartKey string, silent bool) error {
	key := strings.TrimSpace(cartKey)
	if key == "" {
		return ErrCartInvalidArgument
	}

	c := cartdom.Cart{Items: []cartdom.LineItem{}, Strategy: uc.strategy}
	uc.save(ctx, key, &c)

	if !silent {
		uc.notifier.Notify(ctx, "Cart cleared.")
	}
	return nil
}

// Total returns the current cart total (price x quantity summed).
func (uc *CartUsecase) Total(ctx context.Context, cartKey string) (float64, error) {
	key := strings.TrimSpace(cartKey)
	if key == "" {
		return 0, ErrCartInvalidArgument
	}
	c := uc.load(ctx, key)
	return c.Total(), nil
}

// load reads and decodes the blob for key, failing open to an empty cart.
func (uc *CartUsecase) load(ctx context.Context, key string) cartdom.Cart {
	blob, err := uc.store.Get(ctx, key)
	if err != nil {
		log.Printf("[cart_usecase] read failed key=%q err=%v (treating as empty)", key, err)
		return cartdom.Cart{Items: []cartdom.LineItem{}, Strategy: uc.strategy}
	}
	return cartdom.Decode(blob, uc.strategy)
}

// save encodes and writes the cart. Write failures are logged and dropped;
// the operation degrades to a no-op on the persisted side.
func (uc *CartUsecase) save(ctx context.Context, key string, c *cartdom.Cart) {
	blob, err := c.Encode()
	if err != nil {
		log.Printf("[cart_usecase] encode failed key=%q err=%v (write dropped)", key, err)
		return
	}
	if err := uc.store.Set(ctx, key, blob); err != nil {
		log.Printf("[cart_usecase] write failed key=%q err=%v (write dropped)", key, err)
	}
}
