package port

import (
	"context"
)

// KeyValueStore is durable storage addressed by string keys.
// GetItem reports found=false for a key that was never set or was removed.
type KeyValueStore interface {
	GetItem(ctx context.Context, key string) (value string, found bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}
