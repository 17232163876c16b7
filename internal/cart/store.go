package cart

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"github.com/nikolayk812/gomarket-cart/internal/domain"
	"github.com/nikolayk812/gomarket-cart/internal/port"
)

const DefaultKey = "@GoMarketplace:cart:products"

// Store owns the cart lines and mirrors them to a single key of a port.KeyValueStore.
//
// Every mutation bumps a version. A write always serializes the cart as it is when the
// write runs, and a write whose version is already on disk is skipped, so the stored value
// never lags behind the last mutation that returned.
type Store struct {
	kv       port.KeyValueStore
	key      string
	logger   *slog.Logger
	deferred bool

	mu       sync.Mutex
	products []domain.CartItem
	version  uint64

	writeMu sync.Mutex
	written uint64
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithDeferredPersistence makes mutations only mark the cart dirty.
// Nothing reaches storage until Flush is called.
func WithDeferredPersistence() Option {
	return func(s *Store) {
		s.deferred = true
	}
}

func New(kv port.KeyValueStore, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv is nil")
	}

	s := &Store{
		kv:     kv,
		key:    DefaultKey,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	return s, nil
}

func Open(ctx context.Context, kv port.KeyValueStore, opts ...Option) (*Store, error) {
	s, err := New(kv, opts...)
	if err != nil {
		return nil, err
	}

	s.Load(ctx)
	return s, nil
}

// Load replaces the in-memory cart with the stored one. An absent key, a failed read and
// an unparsable value all leave the cart as it is.
func (s *Store) Load(ctx context.Context) {
	if s == nil {
		return
	}

	value, found, err := s.kv.GetItem(ctx, s.key)
	if err != nil {
		s.logger.WarnContext(ctx, "cart read failed, starting empty", "key", s.key, "error", err)
		return
	}
	if !found {
		s.logger.DebugContext(ctx, "no stored cart", "key", s.key)
		return
	}

	items, err := decodeItems(value)
	if err != nil {
		s.logger.WarnContext(ctx, "stored cart is not parsable, starting empty", "key", s.key, "error", err)
		return
	}

	s.mu.Lock()
	s.products = items
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "cart loaded", "key", s.key, "items", len(items))
}

func (s *Store) Products() []domain.CartItem {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.products)
}

// AddToCart appends the product with quantity 1. Products already in the cart are
// appended again.
func (s *Store) AddToCart(ctx context.Context, p domain.Product) error {
	if s == nil {
		return ErrNoStore
	}

	s.mu.Lock()
	s.products = append(s.products, domain.NewCartItem(p))
	s.version++
	s.mu.Unlock()

	return s.persist(ctx)
}

// Increment raises the quantity of the first line with the given id by one.
// An unknown id is a no-op.
func (s *Store) Increment(ctx context.Context, id string) error {
	return s.adjust(ctx, id, 1)
}

// Decrement lowers the quantity by one. There is no floor and the line is never removed.
func (s *Store) Decrement(ctx context.Context, id string) error {
	return s.adjust(ctx, id, -1)
}

func (s *Store) adjust(ctx context.Context, id string, delta int) error {
	if s == nil {
		return ErrNoStore
	}

	s.mu.Lock()
	i := domain.IndexOf(s.products, id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}

	s.products[i].Quantity += delta
	s.version++
	s.mu.Unlock()

	return s.persist(ctx)
}

// Flush writes the current cart if the last mutation has not been written yet.
func (s *Store) Flush(ctx context.Context) error {
	if s == nil {
		return ErrNoStore
	}

	return s.write(ctx)
}

func (s *Store) persist(ctx context.Context) error {
	if s.deferred {
		return nil
	}

	return s.write(ctx)
}

func (s *Store) write(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	version := s.version
	products := slices.Clone(s.products)
	s.mu.Unlock()

	if version == s.written {
		return nil
	}

	value, err := encodeItems(products)
	if err != nil {
		return fmt.Errorf("encodeItems: %w", err)
	}

	if err := s.kv.SetItem(ctx, s.key, value); err != nil {
		s.logger.ErrorContext(ctx, "cart write failed", "key", s.key, "version", version, "error", err)
		return fmt.Errorf("kv.SetItem: %w", err)
	}

	s.written = version
	return nil
}
