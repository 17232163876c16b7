package repository

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/nikolayk812/gomarket-cart/internal/db"
	"github.com/nikolayk812/gomarket-cart/internal/port"
)

var errEmptyKey = errors.New("key is empty")

type kvRepository struct {
	q *db.Queries
}

// conn is usually a *pgxpool.Pool, but a pgx.Tx works as well
func NewKeyValue(conn db.DBTX) (port.KeyValueStore, error) {
	if conn == nil {
		return nil, fmt.Errorf("conn is nil")
	}

	return &kvRepository{
		q: db.New(conn),
	}, nil
}

func (r *kvRepository) GetItem(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errEmptyKey
	}

	value, err := r.q.GetItem(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("q.GetItem: %w", err)
	}

	return value, true, nil
}

func (r *kvRepository) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return errEmptyKey
	}

	err := r.q.SetItem(ctx, db.SetItemParams{
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("q.SetItem: %w", err)
	}

	return nil
}

func (r *kvRepository) RemoveItem(ctx context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}

	if _, err := r.q.RemoveItem(ctx, key); err != nil {
		return fmt.Errorf("q.RemoveItem: %w", err)
	}

	return nil
}
