package repository_test

import (
	"context"
	"fmt"
	"testing"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/gomarket-cart/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_kv_items.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func startRedis(ctx context.Context) (testcontainers.Container, string, error) {
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7.4-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("testcontainers.GenericContainer: %w", err)
	}

	endpoint, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		return nil, "", fmt.Errorf("rc.Endpoint: %w", err)
	}

	return redisContainer, endpoint, nil
}

func randomKey() string {
	return fmt.Sprintf("@%s:cart:%s", gofakeit.Word(), gofakeit.UUID())
}

// testKeyValueStore runs the behaviour every backend has to share.
func testKeyValueStore(t *testing.T, store port.KeyValueStore) {
	t.Helper()

	t.Run("get absent key: not found", func(t *testing.T) {
		value, found, err := store.GetItem(t.Context(), randomKey())
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("set then get: ok", func(t *testing.T) {
		ctx := t.Context()
		key := randomKey()
		want := `[{"id":"p1","title":"Shirt","image_url":"u","price":10,"quantity":1}]`

		require.NoError(t, store.SetItem(ctx, key, want))

		got, found, err := store.GetItem(ctx, key)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, want, got)
	})

	t.Run("set overwrites: ok", func(t *testing.T) {
		ctx := t.Context()
		key := randomKey()

		require.NoError(t, store.SetItem(ctx, key, "[]"))
		require.NoError(t, store.SetItem(ctx, key, `[{"id":"p2"}]`))

		got, found, err := store.GetItem(ctx, key)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `[{"id":"p2"}]`, got)
	})

	t.Run("remove: ok", func(t *testing.T) {
		ctx := t.Context()
		key := randomKey()

		require.NoError(t, store.SetItem(ctx, key, "[]"))
		require.NoError(t, store.RemoveItem(ctx, key))

		_, found, err := store.GetItem(ctx, key)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("remove absent key: ok", func(t *testing.T) {
		require.NoError(t, store.RemoveItem(t.Context(), randomKey()))
	})

	t.Run("empty key: error", func(t *testing.T) {
		ctx := t.Context()

		_, _, err := store.GetItem(ctx, "")
		require.EqualError(t, err, "key is empty")

		err = store.SetItem(ctx, "", "[]")
		require.EqualError(t, err, "key is empty")

		err = store.RemoveItem(ctx, "")
		require.EqualError(t, err, "key is empty")
	})
}
