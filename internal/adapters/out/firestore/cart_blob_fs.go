// internal/adapters/out/firestore/cart_blob_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CartBlobStoreFS implements cart.BlobStore on Firestore.
//
// Collection design:
// - collection: carts (configurable)
// - docId: cart key (docId is the source of truth)
// - fields: data (the serialized line-item array), updatedAt
//
// The blob stays opaque here; normalization lives in the domain.
type CartBlobStoreFS struct {
	Client     *firestore.Client
	Collection string
}

func NewCartBlobStoreFS(client *firestore.Client, collection string) *CartBlobStoreFS {
	col := strings.TrimSpace(collection)
	if col == "" {
		col = "carts"
	}
	return &CartBlobStoreFS{Client: client, Collection: col}
}

func (s *CartBlobStoreFS) col() *firestore.CollectionRef {
	return s.Client.Collection(s.Collection)
}

type cartBlobDoc struct {
	Data      []byte    `firestore:"data"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// Get returns (nil, nil) when the doc is absent (not-found policy).
func (s *CartBlobStoreFS) Get(ctx context.Context, key string) ([]byte, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("cart_blob_fs: firestore client is nil")
	}

	k := strings.TrimSpace(key)
	if k == "" {
		return nil, errors.New("cart_blob_fs: key is empty")
	}

	snap, err := s.col().Doc(k).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc cartBlobDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	return doc.Data, nil
}

func (s *CartBlobStoreFS) Set(ctx context.Context, key string, blob []byte) error {
	if s == nil || s.Client == nil {
		return errors.New("cart_blob_fs: firestore client is nil")
	}

	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("cart_blob_fs: key is empty")
	}

	// overwrite the full doc (simple & predictable)
	_, err := s.col().Doc(k).Set(ctx, cartBlobDoc{
		Data:      blob,
		UpdatedAt: time.Now().UTC(),
	})
	return err
}

func (s *CartBlobStoreFS) Delete(ctx context.Context, key string) error {
	if s == nil || s.Client == nil {
		return errors.New("cart_blob_fs: firestore client is nil")
	}

	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("cart_blob_fs: key is empty")
	}

	_, err := s.col().Doc(k).Delete(ctx)
	return err
}
