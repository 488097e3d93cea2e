// internal/domain/cart/storage_port.go
package cart

import "context"

// BlobStore is the persistence port for cart blobs.
//
// One key holds one serialized cart (a JSON array of line items). The store
// is a dumb byte container on purpose: normalization and merging live in the
// domain, every backend only moves blobs.
//
// Not-found policy:
// - Get returns (nil, nil) when the key has no blob (treated as empty cart).
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, blob []byte) error
	Delete(ctx context.Context, key string) error
}
