//go:build integration
// +build integration

package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPostgresStoreIntegration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	container, dsn := startPostgres(ctx, t)
	defer terminateContainer(t, container)

	s, closeFn, err := Open(ctx, Options{
		Driver:        DriverPostgres,
		DSN:           dsn,
		Namespace:     "alice",
		RunMigrations: true,
	}, logrus.New())
	require.NoError(t, err)
	defer closeFn()

	_, err = s.Get(ctx, "cart-storage")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, Save(ctx, s, "cart-storage", sampleState{Items: []string{"1"}}))
	require.NoError(t, Save(ctx, s, "cart-storage", sampleState{Items: []string{"1", "2"}}))

	got, err := Load[sampleState](ctx, s, "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, got.Items)

	// a second namespace does not see alice's records
	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()
	_, err = NewPostgresStore(pool, "bob").Get(ctx, "cart-storage")
	require.ErrorIs(t, err, ErrNotFound)

	// migrations are idempotent
	require.NoError(t, RunMigrations(dsn, logrus.New()))
}

func startPostgres(ctx context.Context, t *testing.T) (testcontainers.Container, string) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		Env:          map[string]string{"POSTGRES_PASSWORD": "postgres", "POSTGRES_USER": "postgres", "POSTGRES_DB": "storefront"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/storefront?sslmode=disable", host, mappedPort.Port())
	return container, dsn
}

func terminateContainer(t *testing.T, c testcontainers.Container) {
	t.Helper()
	terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, c.Terminate(terminateCtx))
}
