package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/gomarket-cart/internal/cart"
	"github.com/nikolayk812/gomarket-cart/internal/config"
	"github.com/nikolayk812/gomarket-cart/internal/logger"
	"github.com/nikolayk812/gomarket-cart/internal/port"
	"github.com/nikolayk812/gomarket-cart/internal/repository"
	"github.com/spf13/cobra"
)

type app struct {
	envFile string

	cfg    config.Config
	logger *slog.Logger
	close  func() error
}

// execute runs one command and always releases the storage it opened.
func execute(ctx context.Context, root *cobra.Command, a *app) error {
	err := root.ExecuteContext(ctx)
	if closeErr := a.teardown(); closeErr != nil {
		return errors.Join(err, fmt.Errorf("teardown: %w", closeErr))
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "cart",
		Short:         "Inspect and change the persisted shopping cart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file merged into the environment")

	root.AddCommand(
		newAddCmd(),
		newIncCmd(),
		newDecCmd(),
		newListCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load(a.envFile)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	a.cfg = cfg

	a.logger = logger.New(logger.Options{
		Service: "cart",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Writer:  cmd.ErrOrStderr(),
	})

	kv, closeFn, err := openStorage(ctx, cfg, a.logger)
	if err != nil {
		return fmt.Errorf("openStorage: %w", err)
	}
	a.close = closeFn

	store, err := cart.Open(ctx, kv,
		cart.WithKey(cfg.StorageKey),
		cart.WithLogger(a.logger.With("component", "cart")),
	)
	if err != nil {
		return fmt.Errorf("cart.Open: %w", err)
	}

	cmd.SetContext(cart.NewContext(ctx, store))
	return nil
}

func (a *app) teardown() error {
	if a.close == nil {
		return nil
	}

	closeFn := a.close
	a.close = nil
	return closeFn()
}

func openStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (port.KeyValueStore, func() error, error) {
	noop := func() error { return nil }

	logger.Debug("opening storage", "backend", cfg.Backend)

	switch cfg.Backend {
	case config.BackendMemory:
		return repository.NewMemory(), noop, nil

	case config.BackendFile:
		kv, err := repository.NewFile(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.NewFile: %w", err)
		}
		return kv, kv.Close, nil

	case config.BackendPostgres:
		if err := repository.RunMigrations(cfg.PostgresDSN, logger); err != nil {
			return nil, nil, fmt.Errorf("repository.RunMigrations: %w", err)
		}

		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}

		kv, err := repository.NewKeyValue(pool)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("repository.NewKeyValue: %w", err)
		}
		return kv, func() error { pool.Close(); return nil }, nil

	case config.BackendRedis:
		client, err := repository.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.NewRedisClient: %w", err)
		}

		kv, err := repository.NewRedis(client, cfg.RedisKeyPrefix)
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("repository.NewRedis: %w", err)
		}
		return kv, client.Close, nil
	}

	return nil, nil, fmt.Errorf("backend[%s] is not supported", cfg.Backend)
}
