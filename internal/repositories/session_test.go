package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestSessionRevocationRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx).Err())

	repo := NewSessionRevocationRepository(rdb)

	t.Run("unknown session is not revoked", func(t *testing.T) {
		revoked, err := repo.IsRevoked(ctx, "never-seen")
		assert.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revoked session", func(t *testing.T) {
		require.NoError(t, repo.Revoke(ctx, "s1", time.Now().Add(time.Minute)))

		revoked, err := repo.IsRevoked(ctx, "s1")
		assert.NoError(t, err)
		assert.True(t, revoked)

		ttl, err := rdb.TTL(ctx, "session:revoked:s1").Result()
		assert.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("expired session is not stored", func(t *testing.T) {
		require.NoError(t, repo.Revoke(ctx, "s2", time.Now().Add(-time.Minute)))

		revoked, err := repo.IsRevoked(ctx, "s2")
		assert.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revocation expires with the token", func(t *testing.T) {
		require.NoError(t, repo.Revoke(ctx, "s3", time.Now().Add(1500*time.Millisecond)))
		time.Sleep(2 * time.Second)

		revoked, err := repo.IsRevoked(ctx, "s3")
		assert.NoError(t, err)
		assert.False(t, revoked)
	})
}
