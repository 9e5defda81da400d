package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/itinerary-service/internal/domain"
	"github.com/itinerary-service/internal/domain/repository"
	"github.com/itinerary-service/internal/usecase"
	"github.com/itinerary-service/internal/worker"
	"go.uber.org/zap"
)

const (
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
)

// RoutePrecomputeWorker пересчитывает и перекеширует маршруты поездок
// по событиям инвалидации из Redis Stream: trip-backend публикует событие,
// когда состав или времена активностей поездки меняются.
type RoutePrecomputeWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	tripRouteUC  *usecase.TripRouteUseCase
	consumerName string
	maxRetries   int
	batchSize    int
}

// NewRoutePrecomputeWorker создает новый RoutePrecomputeWorker
func NewRoutePrecomputeWorker(
	streamRepo repository.StreamRepository,
	tripRouteUC *usecase.TripRouteUseCase,
	consumerGroup string,
	maxRetries int,
	batchSize int,
	logger *zap.Logger,
) *RoutePrecomputeWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &RoutePrecomputeWorker{
		BaseWorker:   worker.NewBaseWorker("route-precompute", consumerGroup, logger),
		streamRepo:   streamRepo,
		tripRouteUC:  tripRouteUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
		batchSize:    batchSize,
	}
}

// Start запускает воркер
func (w *RoutePrecomputeWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting RoutePrecomputeWorker (batch mode)",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize))

	// Создаем consumer group
	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamTripRouteInvalidate, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// Основной цикл обработки
	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second) // пауза при ошибке
				continue
			}

			// Если ничего не обработали - короткая пауза
			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает batch событий инвалидации.
// Возвращает количество обработанных сообщений.
func (w *RoutePrecomputeWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamTripRouteInvalidate,
		w.ConsumerGroup(),
		w.consumerName,
		w.batchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil // очередь пуста
	}

	logger.Info("Processing batch",
		zap.Int("message_count", len(messages)))

	// Сначала разбираем всю пачку: активности всех валидных событий
	// потом читаются одним батч-запросом
	type pendingEvent struct {
		event domain.TripRouteEvent
		msgID string
	}
	pending := make([]pendingEvent, 0, len(messages))
	seen := make(map[uuid.UUID]struct{}, len(messages))
	tripIDs := make([]uuid.UUID, 0, len(messages))

	for _, msg := range messages {
		var event domain.TripRouteEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
			// Битое сообщение: подтверждаем и пропускаем, ретраи не помогут
			logger.Warn("Failed to parse trip route event, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			w.ack(ctx, msg.ID)
			continue
		}

		pending = append(pending, pendingEvent{event: event, msgID: msg.ID})
		if _, ok := seen[event.TripID]; !ok {
			seen[event.TripID] = struct{}{}
			tripIDs = append(tripIDs, event.TripID)
		}
	}

	var prefetched map[uuid.UUID][]domain.ActivityRecord
	if len(pending) > 0 {
		var err error
		prefetched, err = w.tripRouteUC.PrefetchActivities(ctx, tripIDs)
		if err != nil {
			// Не фатально: processEvent откатится к чтению по одной поездке
			logger.Warn("Failed to prefetch activities batch",
				zap.Int("trip_count", len(tripIDs)),
				zap.Error(err))
			prefetched = nil
		}
	}

	for _, p := range pending {
		w.processEvent(ctx, &p.event, p.msgID, prefetched)
	}

	return len(messages), nil
}

// processEvent пересчитывает маршруты одной поездки с ретраями.
// Сообщение подтверждается в любом случае: после maxRetries неудач
// событие считается отравленным и отбрасывается с логом.
func (w *RoutePrecomputeWorker) processEvent(
	ctx context.Context,
	event *domain.TripRouteEvent,
	messageID string,
	prefetched map[uuid.UUID][]domain.ActivityRecord,
) {
	logger := w.Logger()

	// Сначала удаляем устаревший кеш: даже если пересчёт ниже не удастся,
	// читатели получат промах и свежий расчёт, а не старый маршрут
	if err := w.tripRouteUC.InvalidateTripRoutes(ctx, event.TripID); err != nil {
		logger.Warn("Failed to invalidate cached trip routes",
			zap.String("trip_id", event.TripID.String()),
			zap.Error(err))
	}

	records, fromBatch := prefetched[event.TripID]

	for _, mode := range event.Modes() {
		var lastErr error
		for attempt := 1; attempt <= w.maxRetries; attempt++ {
			var err error
			if fromBatch {
				_, err = w.tripRouteUC.RecomputeTripRouteFrom(ctx, event.TripID, mode, records)
			} else {
				_, err = w.tripRouteUC.RecomputeTripRoute(ctx, event.TripID, mode)
			}
			if err != nil {
				lastErr = err
				logger.Warn("Trip route recompute failed",
					zap.String("trip_id", event.TripID.String()),
					zap.String("mode", mode.String()),
					zap.Int("attempt", attempt),
					zap.Error(err))
				continue
			}
			lastErr = nil
			break
		}

		if lastErr != nil {
			logger.Error("Trip route recompute gave up",
				zap.String("trip_id", event.TripID.String()),
				zap.String("mode", mode.String()),
				zap.Int("max_retries", w.maxRetries),
				zap.Error(lastErr))
		}
	}

	w.ack(ctx, messageID)
}

func (w *RoutePrecomputeWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamTripRouteInvalidate, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Warn("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
