package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/itinerary-service/internal/domain"
)

// CacheRepository - кеш вычисленных маршрутов поездок.
// Результаты геокодирования сюда не попадают: их кеш живёт только
// в памяти процесса внутри геокодера.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// GetTripRoute возвращает закешированный маршрут поездки или nil при промахе
	GetTripRoute(ctx context.Context, tripID uuid.UUID, mode domain.TransportMode) (*domain.ItineraryRoute, error)

	// SetTripRoute сохраняет вычисленный маршрут поездки
	SetTripRoute(ctx context.Context, tripID uuid.UUID, mode domain.TransportMode, route *domain.ItineraryRoute, ttl time.Duration) error

	// DeleteTripRoutes удаляет закешированные маршруты поездки для всех режимов
	DeleteTripRoutes(ctx context.Context, tripID uuid.UUID) error
}
