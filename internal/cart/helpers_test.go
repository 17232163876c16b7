package cart_test

import (
	"context"
	"sync"
	"testing"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/gomarket-cart/internal/domain"
	"github.com/nikolayk812/gomarket-cart/internal/port"
	"github.com/nikolayk812/gomarket-cart/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// recordingKV counts writes and can be told to fail them.
type recordingKV struct {
	port.KeyValueStore

	mu       sync.Mutex
	sets     int
	setErr   error
	getErr   error
	lastSave string
}

func newRecordingKV() *recordingKV {
	return &recordingKV{KeyValueStore: repository.NewMemory()}
}

func (r *recordingKV) GetItem(ctx context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	getErr := r.getErr
	r.mu.Unlock()

	if getErr != nil {
		return "", false, getErr
	}
	return r.KeyValueStore.GetItem(ctx, key)
}

func (r *recordingKV) SetItem(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sets++
	if r.setErr != nil {
		return r.setErr
	}
	r.lastSave = value
	return r.KeyValueStore.SetItem(ctx, key, value)
}

func (r *recordingKV) setCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sets
}

func (r *recordingKV) failWrites(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setErr = err
}

func randomProduct() domain.Product {
	return domain.Product{
		ID:       gofakeit.UUID(),
		Title:    gofakeit.ProductName(),
		ImageURL: gofakeit.URL(),
		Price:    decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
	}
}

func shirt() domain.Product {
	return domain.Product{
		ID:       "p1",
		Title:    "Shirt",
		ImageURL: "u",
		Price:    decimal.NewFromInt(10),
	}
}

func assertItems(t *testing.T, expected, actual []domain.CartItem) {
	t.Helper()

	decimalComparer := cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})

	diff := cmp.Diff(expected, actual, decimalComparer)
	assert.Empty(t, diff)
}
