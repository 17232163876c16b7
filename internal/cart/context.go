package cart

import (
	"context"
	"errors"
)

// ErrNoStore is returned (or raised, see MustFromContext) when the cart is used
// outside of a scope that provides a store.
var ErrNoStore = errors.New("cart: store must be used within a cart provider")

type storeKey struct{}

func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(storeKey{}).(*Store)
	return s, ok && s != nil
}

// MustFromContext panics with ErrNoStore when ctx carries no store.
func MustFromContext(ctx context.Context) *Store {
	s, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoStore)
	}
	return s
}
