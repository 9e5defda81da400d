package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/itinerary-service/internal/domain"
	"github.com/itinerary-service/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

func tripRouteKey(tripID uuid.UUID, mode domain.TransportMode) string {
	return fmt.Sprintf("trip-route:%s:%s", tripID, mode)
}

// GetTripRoute получает закешированный маршрут поездки
func (r *cacheRepository) GetTripRoute(ctx context.Context, tripID uuid.UUID, mode domain.TransportMode) (*domain.ItineraryRoute, error) {
	data, err := r.Get(ctx, tripRouteKey(tripID, mode))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var route domain.ItineraryRoute
	if err := json.Unmarshal(data, &route); err != nil {
		r.logger.Error("Failed to unmarshal trip route from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal trip route: %w", err)
	}

	return &route, nil
}

// SetTripRoute сохраняет маршрут поездки в кеше
func (r *cacheRepository) SetTripRoute(ctx context.Context, tripID uuid.UUID, mode domain.TransportMode, route *domain.ItineraryRoute, ttl time.Duration) error {
	data, err := json.Marshal(route)
	if err != nil {
		r.logger.Error("Failed to marshal trip route", zap.Error(err))
		return fmt.Errorf("marshal trip route: %w", err)
	}

	return r.Set(ctx, tripRouteKey(tripID, mode), data, ttl)
}

// DeleteTripRoutes удаляет маршруты поездки для всех режимов
func (r *cacheRepository) DeleteTripRoutes(ctx context.Context, tripID uuid.UUID) error {
	keys := make([]string, 0, 3)
	for _, mode := range []domain.TransportMode{domain.ModeWalking, domain.ModeDriving, domain.ModeCycling} {
		keys = append(keys, tripRouteKey(tripID, mode))
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("Failed to delete trip routes",
			zap.String("trip_id", tripID.String()),
			zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	return nil
}
