package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestRedisConfig holds configuration for test Redis instances
type TestRedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DefaultTestRedisConfig returns the default test Redis configuration
func DefaultTestRedisConfig() *TestRedisConfig {
	return &TestRedisConfig{
		Addr:     "localhost:6379",
		Password: "",
		DB:       15, // Use DB 15 for tests to avoid conflicts
	}
}

// CreateTestRedisClient creates a Redis client for testing against a
// locally running server, skipping the test when none is available
func CreateTestRedisClient(t *testing.T, cfg *TestRedisConfig) redis.UniversalClient {
	if cfg == nil {
		cfg = DefaultTestRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	require.NoError(t, client.FlushDB(ctx).Err(), "Failed to flush test Redis database")

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})

	return client
}

// CreateRedisContainer starts a throwaway Redis container and returns a
// client connected to it, skipping the test when Docker is unavailable
func CreateRedisContainer(t *testing.T) redis.UniversalClient {
	t.Helper()

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("Docker not available for testing: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() {
		_ = client.Close()
	})

	require.NoError(t, client.Ping(ctx).Err())
	return client
}
