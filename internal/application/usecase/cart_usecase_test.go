// internal/application/usecase/cart_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "heavendesigns/internal/domain/cart"
	productdom "heavendesigns/internal/domain/product"
)

// fakeStore is an in-memory cart.BlobStore for tests.
type fakeStore struct {
	mu    sync.Mutex
	blobs map[string][]byte

	getErr error
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{blobs: map[string][]byte{}}
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	b, ok := s.blobs[key]
	if !ok {
		return nil, nil
	}
	return b, nil
}

func (s *fakeStore) Set(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.blobs[key] = blob
	return nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

// recordingNotifier captures notifications in order.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.messages))
	copy(out, n.messages)
	return out
}

func newCartFixture() (*CartUsecase, *fakeStore, *recordingNotifier) {
	store := newFakeStore()
	notifier := &recordingNotifier{}
	uc := NewCartUsecase(store, productdom.NewInlineCatalog(), notifier, cartdom.KeyByID)
	return uc, store, notifier
}

func TestCartUsecase_RequiresCartKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _, _ := newCartFixture()

	_, err := uc.GetCart(ctx, "  ")
	assert.ErrorIs(t, err, ErrCartInvalidArgument)

	_, err = uc.AddItem(ctx, "", "custom-shirt")
	assert.ErrorIs(t, err, ErrCartInvalidArgument)

	assert.ErrorIs(t, uc.Clear(ctx, "", false), ErrCartInvalidArgument)
}

func TestCartUsecase_AddItemFromCatalog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _, notifier := newCartFixture()

	items, err := uc.AddItem(ctx, "k1", "custom-shirt")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Custom Shirt", items[0].Name)
	assert.Equal(t, 20.0, items[0].Price)
	assert.Equal(t, 1, items[0].Quantity)

	// same product again merges instead of appending
	items, err = uc.AddItem(ctx, "k1", "custom-shirt")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	assert.Equal(t, []string{"Custom Shirt added to cart!", "Custom Shirt added to cart!"}, notifier.all())
}

func TestCartUsecase_AddItemUnknownProductIsNoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _, notifier := newCartFixture()

	items, err := uc.AddItem(ctx, "k1", "no-such-product")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, notifier.all())
}

func TestCartUsecase_RemoveItem(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _, notifier := newCartFixture()

	_, err := uc.AddItem(ctx, "k1", "custom-hoodie")
	require.NoError(t, err)

	items, err := uc.RemoveItem(ctx, "k1", "custom-hoodie")
	require.NoError(t, err)
	assert.Empty(t, items)

	// absent key: no-op, no notification
	_, err = uc.RemoveItem(ctx, "k1", "custom-hoodie")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Custom Hoodie added to cart!",
		"Custom Hoodie removed from cart.",
	}, notifier.all())
}

func TestCartUsecase_AdjustQuantityRemovalNotifies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _, notifier := newCartFixture()

	_, err := uc.AddItem(ctx, "k1", "custom-tote")
	require.NoError(t, err)

	items, err := uc.AdjustQuantity(ctx, "k1", "custom-tote", 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	items, err = uc.AdjustQuantity(ctx, "k1", "custom-tote", -3)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.Equal(t, []string{
		"Custom Tote Bag added to cart!",
		"Custom Tote Bag removed from cart.",
	}, notifier.all())
}

func TestCartUsecase_SetQuantityNeverRemoves(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _, _ := newCartFixture()

	_, err := uc.AddItem(ctx, "k1", "custom-apron")
	require.NoError(t, err)

	items, err := uc.SetQuantity(ctx, "k1", "custom-apron", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCartUsecase_ClearAndSilentClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _, notifier := newCartFixture()

	_, err := uc.AddItem(ctx, "k1", "custom-shirt")
	require.NoError(t, err)

	require.NoError(t, uc.Clear(ctx, "k1", false))
	items, err := uc.GetCart(ctx, "k1")
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, uc.Clear(ctx, "k1", true))

	msgs := notifier.all()
	assert.Contains(t, msgs, "Cart cleared.")
	assert.Equal(t, 2, len(msgs), "silent clear adds no notification")
}

func TestCartUsecase_ReadFailureFailsOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, store, _ := newCartFixture()

	store.getErr = errors.New("backend down")

	items, err := uc.GetCart(ctx, "k1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartUsecase_WriteFailureIsDropped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, store, _ := newCartFixture()

	store.setErr = errors.New("backend down")

	// the in-memory result still comes back so the caller renders a
	// stable state; persistence silently degrades
	items, err := uc.AddItem(ctx, "k1", "custom-shirt")
	require.NoError(t, err)
	require.Len(t, items, 1)

	store.setErr = nil
	items, err = uc.GetCart(ctx, "k1")
	require.NoError(t, err)
	assert.Empty(t, items, "nothing was persisted")
}

func TestCartUsecase_CartsAreIsolatedByKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _, _ := newCartFixture()

	_, err := uc.AddItem(ctx, "alice", "custom-shirt")
	require.NoError(t, err)

	items, err := uc.GetCart(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartUsecase_Total(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _, _ := newCartFixture()

	_, err := uc.AddItem(ctx, "k1", "custom-shirt")
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, "k1", "vinyl-sticker-pack")
	require.NoError(t, err)

	total, err := uc.Total(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, 32.0, total)
}
