//go:build integration

package integration

import (
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/caresure/providerportal/internal/domain/entities"
	redisclient "github.com/caresure/providerportal/internal/infrastructure/clients/redis"
	"github.com/caresure/providerportal/pkg/config"
)

func newTestRedisClient(t *testing.T) *redisclient.Client {
	t.Helper()

	port := 6379
	if p := os.Getenv("TEST_REDIS_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		require.NoError(t, err)
		port = parsed
	}

	client, err := redisclient.NewClient(&config.RedisConfig{
		Host:     os.Getenv("TEST_REDIS_HOST"),
		Port:     port,
		Password: os.Getenv("TEST_REDIS_PASSWORD"),
		DB:       15, // dedicated test database
	})
	require.NoError(t, err)
	return client
}

func waitForVerificationEvent(t *testing.T, ch <-chan *entities.VerificationEvent) *entities.VerificationEvent {
	t.Helper()
	select {
	case event := <-ch:
		require.NotNil(t, event)
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for verification event")
		return nil
	}
}
