//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/phrazzld/wodlog-api/internal/domain"
	"github.com/phrazzld/wodlog-api/internal/platform/redis"
)

// startRedis runs a throwaway Redis and returns its redis:// URL.
func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestPRCache_AgainstRedis(t *testing.T) {
	ctx := context.Background()

	client, err := redis.Connect(ctx, startRedis(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cache := redis.NewPRCache(client, time.Minute, nil)

	athleteID, err := domain.NewAthleteID("athlete-1")
	require.NoError(t, err)
	wodID, err := domain.NewWodID("fran")
	require.NoError(t, err)
	resultID, err := domain.NewResultID("3f2b8a4e-9c1d-4e5f-8a7b-6c5d4e3f2a1b")
	require.NoError(t, err)

	_, gen, ok, err := cache.Get(ctx, athleteID, wodID)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := cache.Set(ctx, athleteID, wodID, gen, resultID)
	require.NoError(t, err)
	assert.True(t, stored)

	got, _, ok, err := cache.Get(ctx, athleteID, wodID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, resultID, got)

	ttl, err := client.TTL(ctx, redis.Key(athleteID, wodID)).Result()
	require.NoError(t, err)
	assert.InDelta(t, time.Minute.Seconds(), ttl.Seconds(), 5)

	require.NoError(t, cache.Invalidate(ctx, athleteID, wodID))
	_, _, ok, err = cache.Get(ctx, athleteID, wodID)
	require.NoError(t, err)
	assert.False(t, ok)

	// The generation read before the invalidation no longer allows a write.
	stored, err = cache.Set(ctx, athleteID, wodID, gen, resultID)
	require.NoError(t, err)
	assert.False(t, stored)

	_, gen, _, err = cache.Get(ctx, athleteID, wodID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	stored, err = cache.Set(ctx, athleteID, wodID, gen, resultID)
	require.NoError(t, err)
	assert.True(t, stored)
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := redis.Connect(ctx, "127.0.0.1:1")
	assert.ErrorContains(t, err, "failed to connect to redis")
}
