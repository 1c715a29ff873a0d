package store

import (
	"context"
	"testing"
	"time"

	"github.com/aseptimu/linktable/internal/app/service"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
)

func skipWithoutDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
}

func TestDatabase(t *testing.T) {
	skipWithoutDocker(t)
	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:16-alpine"),
		postgres.WithDatabase("links"),
		postgres.WithUsername("shortener"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// каждому подтесту — чистая таблица
	runStoreSuite(t, func(t *testing.T) service.Store {
		db, err := NewDB(ctx, dsn, 5*time.Second, zaptest.NewLogger(t).Sugar())
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		require.NoError(t, db.EnsureSchema(ctx))

		_, err = db.dbpool.Exec(ctx, "TRUNCATE urlshortener")
		require.NoError(t, err)
		return db
	})
}

func TestRedisStore(t *testing.T) {
	skipWithoutDocker(t)
	ctx := context.Background()

	container, err := tcredis.RunContainer(ctx, testcontainers.WithImage("docker.io/redis:7"))
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	runStoreSuite(t, func(t *testing.T) service.Store {
		// много повторов: в тесте на конкурентность все 20 горутин бьют в один ключ
		s, err := NewRedisStore(uri, 5*time.Second, 100, zaptest.NewLogger(t).Sugar())
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		require.NoError(t, s.client.FlushDB(ctx).Err())
		require.NoError(t, s.EnsureSchema(ctx))
		return s
	})
}
