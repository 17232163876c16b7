package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"github.com/tidwall/buntdb"
)

const fileName = "cart.db"

// FileStore keeps every key in one append-only buntdb file under dir.
type FileStore struct {
	db *buntdb.DB
}

func NewFile(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	db, err := buntdb.Open(filepath.Join(dir, fileName))
	if err != nil {
		return nil, fmt.Errorf("buntdb.Open: %w", err)
	}

	var cfg buntdb.Config
	if err := db.ReadConfig(&cfg); err != nil {
		return nil, errors.Join(fmt.Errorf("db.ReadConfig: %w", err), db.Close())
	}
	cfg.SyncPolicy = buntdb.Always
	if err := db.SetConfig(cfg); err != nil {
		return nil, errors.Join(fmt.Errorf("db.SetConfig: %w", err), db.Close())
	}

	return &FileStore{db: db}, nil
}

func (f *FileStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var value string
	err := f.db.View(func(tx *buntdb.Tx) error {
		var err error
		value, err = tx.Get(key)
		return err
	})
	if err != nil {
		if errors.Is(err, buntdb.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("tx.Get: %w", err)
	}

	return value, true, nil
}

func (f *FileStore) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return errEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := f.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, value, nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("tx.Set: %w", err)
	}

	return nil
}

func (f *FileStore) RemoveItem(ctx context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := f.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(key)
		return err
	})
	if err != nil && !errors.Is(err, buntdb.ErrNotFound) {
		return fmt.Errorf("tx.Delete: %w", err)
	}

	return nil
}

func (f *FileStore) Close() error {
	return f.db.Close()
}
