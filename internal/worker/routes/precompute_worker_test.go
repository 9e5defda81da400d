package routes

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itinerary-service/internal/domain"
	"github.com/itinerary-service/internal/usecase"
)

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
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

type workerMocks struct {
	stream   *MockStreamRepository
	activity *MockActivityRepository
	cache    *MockCacheRepository
	routing  *MockRoutingRepository
}

func newTestWorker(t *testing.T) (*RoutePrecomputeWorker, workerMocks) {
	t.Helper()
	logger := zap.NewNop()
	mocks := workerMocks{
		stream:   &MockStreamRepository{},
		activity: &MockActivityRepository{},
		cache:    &MockCacheRepository{},
		routing:  &MockRoutingRepository{},
	}

	itineraryUC := usecase.NewItineraryUseCase(mocks.routing, logger)
	tripRouteUC := usecase.NewTripRouteUseCase(mocks.activity, mocks.cache, itineraryUC, logger, 15*time.Minute)

	w := NewRoutePrecomputeWorker(mocks.stream, tripRouteUC, "test-group", 3, 20, logger)
	return w, mocks
}

func TestRoutePrecomputeWorker_ProcessBatch(t *testing.T) {
	ctx := context.Background()
	tripID := uuid.New()

	t.Run("empty queue", func(t *testing.T) {
		w, mocks := newTestWorker(t)

		mocks.stream.On("ConsumeBatch", ctx, domain.StreamTripRouteInvalidate, "test-group", mock.Anything, 20).
			Return([]domain.StreamMessage{}, nil)

		processed, err := w.processBatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, processed)

		mocks.stream.AssertNotCalled(t, "AckMessage")
	})

	t.Run("consume failure surfaces", func(t *testing.T) {
		w, mocks := newTestWorker(t)

		mocks.stream.On("ConsumeBatch", ctx, domain.StreamTripRouteInvalidate, "test-group", mock.Anything, 20).
			Return(nil, fmt.Errorf("redis down"))

		_, err := w.processBatch(ctx)
		require.Error(t, err)
	})

	t.Run("valid event recomputed and acked", func(t *testing.T) {
		w, mocks := newTestWorker(t)

		messages := []domain.StreamMessage{
			{ID: "1-0", Data: fmt.Sprintf(`{"trip_id":"%s","mode":"driving"}`, tripID)},
		}

		mocks.stream.On("ConsumeBatch", ctx, domain.StreamTripRouteInvalidate, "test-group", mock.Anything, 20).
			Return(messages, nil)
		mocks.activity.On("GetByTripIDs", ctx, []uuid.UUID{tripID}).
			Return(map[uuid.UUID][]domain.ActivityRecord{tripID: {}}, nil)
		mocks.cache.On("DeleteTripRoutes", ctx, tripID).Return(nil)
		mocks.cache.On("SetTripRoute", ctx, tripID, domain.ModeDriving, mock.Anything, mock.Anything).
			Return(nil)
		mocks.stream.On("AckMessage", ctx, domain.StreamTripRouteInvalidate, "test-group", "1-0").
			Return(nil)

		processed, err := w.processBatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, processed)

		// Активности пачки читаются одним батч-запросом
		mocks.activity.AssertNumberOfCalls(t, "GetByTripIDs", 1)
		mocks.activity.AssertNotCalled(t, "GetByTripID")
		mocks.stream.AssertExpectations(t)
		mocks.cache.AssertExpectations(t)
	})

	t.Run("event without mode recomputes all modes", func(t *testing.T) {
		w, mocks := newTestWorker(t)

		messages := []domain.StreamMessage{
			{ID: "2-0", Data: fmt.Sprintf(`{"trip_id":"%s"}`, tripID)},
		}

		mocks.stream.On("ConsumeBatch", ctx, domain.StreamTripRouteInvalidate, "test-group", mock.Anything, 20).
			Return(messages, nil)
		mocks.activity.On("GetByTripIDs", ctx, []uuid.UUID{tripID}).
			Return(map[uuid.UUID][]domain.ActivityRecord{tripID: {}}, nil)
		mocks.cache.On("DeleteTripRoutes", ctx, tripID).Return(nil)
		mocks.cache.On("SetTripRoute", ctx, tripID, mock.Anything, mock.Anything, mock.Anything).
			Return(nil)
		mocks.stream.On("AckMessage", ctx, domain.StreamTripRouteInvalidate, "test-group", "2-0").
			Return(nil)

		_, err := w.processBatch(ctx)
		require.NoError(t, err)

		mocks.cache.AssertNumberOfCalls(t, "SetTripRoute", 3)
	})

	t.Run("malformed message acked and skipped", func(t *testing.T) {
		w, mocks := newTestWorker(t)

		messages := []domain.StreamMessage{
			{ID: "3-0", Data: "{not json"},
		}

		mocks.stream.On("ConsumeBatch", ctx, domain.StreamTripRouteInvalidate, "test-group", mock.Anything, 20).
			Return(messages, nil)
		mocks.stream.On("AckMessage", ctx, domain.StreamTripRouteInvalidate, "test-group", "3-0").
			Return(nil)

		processed, err := w.processBatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, processed)

		mocks.activity.AssertNotCalled(t, "GetByTripIDs")
		mocks.activity.AssertNotCalled(t, "GetByTripID")
		mocks.stream.AssertExpectations(t)
	})

	t.Run("poison event acked after retries exhausted", func(t *testing.T) {
		w, mocks := newTestWorker(t)

		messages := []domain.StreamMessage{
			{ID: "4-0", Data: fmt.Sprintf(`{"trip_id":"%s","mode":"walking"}`, tripID)},
		}

		mocks.stream.On("ConsumeBatch", ctx, domain.StreamTripRouteInvalidate, "test-group", mock.Anything, 20).
			Return(messages, nil)
		// Батч-чтение падает, воркер откатывается к чтению по одной поездке
		mocks.activity.On("GetByTripIDs", ctx, []uuid.UUID{tripID}).
			Return(nil, fmt.Errorf("connection refused"))
		mocks.activity.On("GetByTripID", ctx, tripID).
			Return(nil, fmt.Errorf("connection refused"))
		mocks.cache.On("DeleteTripRoutes", ctx, tripID).Return(nil)
		mocks.stream.On("AckMessage", ctx, domain.StreamTripRouteInvalidate, "test-group", "4-0").
			Return(nil)

		_, err := w.processBatch(ctx)
		require.NoError(t, err)

		// maxRetries попыток, затем сообщение отбрасывается с ack
		mocks.activity.AssertNumberOfCalls(t, "GetByTripID", 3)
		mocks.stream.AssertExpectations(t)
	})

	t.Run("batch of events shares one activities read", func(t *testing.T) {
		w, mocks := newTestWorker(t)

		tripA := uuid.New()
		tripB := uuid.New()
		messages := []domain.StreamMessage{
			{ID: "5-0", Data: fmt.Sprintf(`{"trip_id":"%s","mode":"driving"}`, tripA)},
			{ID: "5-1", Data: fmt.Sprintf(`{"trip_id":"%s","mode":"driving"}`, tripB)},
		}

		mocks.stream.On("ConsumeBatch", ctx, domain.StreamTripRouteInvalidate, "test-group", mock.Anything, 20).
			Return(messages, nil)
		mocks.activity.On("GetByTripIDs", ctx, []uuid.UUID{tripA, tripB}).
			Return(map[uuid.UUID][]domain.ActivityRecord{tripA: {}, tripB: {}}, nil)
		mocks.cache.On("DeleteTripRoutes", ctx, mock.Anything).Return(nil)
		mocks.cache.On("SetTripRoute", ctx, mock.Anything, domain.ModeDriving, mock.Anything, mock.Anything).
			Return(nil)
		mocks.stream.On("AckMessage", ctx, domain.StreamTripRouteInvalidate, "test-group", mock.Anything).
			Return(nil)

		processed, err := w.processBatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, processed)

		mocks.activity.AssertNumberOfCalls(t, "GetByTripIDs", 1)
		mocks.activity.AssertNotCalled(t, "GetByTripID")
		mocks.cache.AssertNumberOfCalls(t, "SetTripRoute", 2)
		mocks.stream.AssertNumberOfCalls(t, "AckMessage", 2)
	})
}
