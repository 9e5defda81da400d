package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/itinerary-service/internal/domain"
)

type MockRoutingRepository struct {
	mock.Mock
}

func (m *MockRoutingRepository) GetRoute(ctx context.Context, from, to domain.Coordinate, mode domain.TransportMode) (*domain.RouteLeg, error) {
	args := m.Called(ctx, from, to, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteLeg), args.Error(1)
}

func (m *MockRoutingRepository) GetMultiPointRoute(ctx context.Context, points []domain.Coordinate, mode domain.TransportMode) (*domain.MultiPointRoute, error) {
	args := m.Called(ctx, points, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MultiPointRoute), args.Error(1)
}

type MockGeocodingRepository struct {
	mock.Mock
}

func (m *MockGeocodingRepository) SearchCities(ctx context.Context, query string, limit int) ([]domain.CitySearchResult, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CitySearchResult), args.Error(1)
}

func (m *MockGeocodingRepository) ReverseGeocode(ctx context.Context, lat, lng float64) (*domain.CitySearchResult, error) {
	args := m.Called(ctx, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CitySearchResult), args.Error(1)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) GetByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ActivityRecord, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityRecord), args.Error(1)
}

func (m *MockActivityRepository) GetByTripIDs(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID][]domain.ActivityRecord, error) {
	args := m.Called(ctx, tripIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]domain.ActivityRecord), args.Error(1)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetTripRoute(ctx context.Context, tripID uuid.UUID, mode domain.TransportMode) (*domain.ItineraryRoute, error) {
	args := m.Called(ctx, tripID, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItineraryRoute), args.Error(1)
}

func (m *MockCacheRepository) SetTripRoute(ctx context.Context, tripID uuid.UUID, mode domain.TransportMode, route *domain.ItineraryRoute, ttl time.Duration) error {
	args := m.Called(ctx, tripID, mode, route, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteTripRoutes(ctx context.Context, tripID uuid.UUID) error {
	args := m.Called(ctx, tripID)
	return args.Error(0)
}
