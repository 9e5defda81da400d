package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itinerary-service/internal/domain"
	redisRepo "github.com/itinerary-service/internal/repository/redis"
)

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     "localhost:6379",
		Password: "",
		DB:       1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Test connection
	err := client.Ping(ctx).Err()
	if err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	client.Del(ctx, "test:stream:trips:route-invalidate")

	return client
}

func TestStreamRepository_PublishAndConsume(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	logger := zap.NewNop()
	repo := redisRepo.NewStreamRepository(client, logger)
	ctx := context.Background()

	stream := "test:stream:trips:route-invalidate"
	group := "test-group"
	consumer := "test-consumer"

	// Группа создаётся до публикации: доставляются только новые сообщения
	err := repo.CreateConsumerGroup(ctx, stream, group)
	require.NoError(t, err)

	// Повторное создание идемпотентно
	err = repo.CreateConsumerGroup(ctx, stream, group)
	require.NoError(t, err)

	event := domain.TripRouteEvent{
		TripID: uuid.New(),
		Mode:   domain.ModeWalking,
	}
	err = repo.PublishToStream(ctx, stream, event)
	require.NoError(t, err)

	messages, err := repo.ConsumeBatch(ctx, stream, group, consumer, 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	var got domain.TripRouteEvent
	err = json.Unmarshal([]byte(messages[0].Data), &got)
	require.NoError(t, err)
	assert.Equal(t, event.TripID, got.TripID)
	assert.Equal(t, domain.ModeWalking, got.Mode)

	err = repo.AckMessage(ctx, stream, group, messages[0].ID)
	require.NoError(t, err)

	// После ack новых сообщений нет
	messages, err = repo.ConsumeBatch(ctx, stream, group, consumer, 10)
	require.NoError(t, err)
	assert.Empty(t, messages)

	client.Del(ctx, stream)
}
