package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/itinerary-service/internal/domain"
	"github.com/itinerary-service/internal/domain/repository"
	"github.com/itinerary-service/internal/pkg/errors"
)

// TripRouteUseCase - маршрут поездки с cache-aside поверх расчёта:
// активности читаются из основной БД, готовый маршрут кешируется
// в Redis по паре (trip_id, mode).
type TripRouteUseCase struct {
	activityRepo repository.ActivityRepository
	cacheRepo    repository.CacheRepository
	itineraryUC  *ItineraryUseCase
	logger       *zap.Logger
	cacheTTL     time.Duration
}

// NewTripRouteUseCase - создание нового TripRouteUseCase
func NewTripRouteUseCase(
	activityRepo repository.ActivityRepository,
	cacheRepo repository.CacheRepository,
	itineraryUC *ItineraryUseCase,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *TripRouteUseCase {
	return &TripRouteUseCase{
		activityRepo: activityRepo,
		cacheRepo:    cacheRepo,
		itineraryUC:  itineraryUC,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// GetTripRoute возвращает маршрут поездки и признак попадания в кеш.
// Сбои кеша не фатальны: промах с пересчётом.
func (uc *TripRouteUseCase) GetTripRoute(
	ctx context.Context,
	tripID uuid.UUID,
	mode domain.TransportMode,
) (*domain.ItineraryRoute, bool, error) {
	if !mode.Valid() {
		return nil, false, errors.ErrInvalidTransportMode
	}

	cached, err := uc.cacheRepo.GetTripRoute(ctx, tripID, mode)
	if err != nil {
		uc.logger.Warn("Trip route cache read failed",
			zap.String("trip_id", tripID.String()),
			zap.Error(err))
	}
	if cached != nil {
		return cached, true, nil
	}

	route, err := uc.RecomputeTripRoute(ctx, tripID, mode)
	if err != nil {
		return nil, false, err
	}
	return route, false, nil
}

// InvalidateTripRoutes удаляет закешированные маршруты поездки для всех
// режимов. Активности меняются для поездки целиком, поэтому устаревают
// сразу все режимы - даже если пересчитывается только один.
func (uc *TripRouteUseCase) InvalidateTripRoutes(ctx context.Context, tripID uuid.UUID) error {
	if err := uc.cacheRepo.DeleteTripRoutes(ctx, tripID); err != nil {
		uc.logger.Warn("Trip route cache invalidation failed",
			zap.String("trip_id", tripID.String()),
			zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}

// PrefetchActivities загружает активности нескольких поездок одним
// батч-запросом, сгруппированные по trip_id. Воркер зовёт его один раз
// на пачку событий вместо запроса на каждую поездку.
func (uc *TripRouteUseCase) PrefetchActivities(
	ctx context.Context,
	tripIDs []uuid.UUID,
) (map[uuid.UUID][]domain.ActivityRecord, error) {
	grouped, err := uc.activityRepo.GetByTripIDs(ctx, tripIDs)
	if err != nil {
		uc.logger.Error("Failed to load activities batch",
			zap.Int("trip_count", len(tripIDs)),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return grouped, nil
}

// RecomputeTripRoute пересчитывает маршрут из БД, минуя кеш, и
// перезаписывает закешированное значение. Используется воркером
// инвалидации и как ветка промаха в GetTripRoute.
func (uc *TripRouteUseCase) RecomputeTripRoute(
	ctx context.Context,
	tripID uuid.UUID,
	mode domain.TransportMode,
) (*domain.ItineraryRoute, error) {
	if !mode.Valid() {
		return nil, errors.ErrInvalidTransportMode
	}

	records, err := uc.activityRepo.GetByTripID(ctx, tripID)
	if err != nil {
		uc.logger.Error("Failed to load trip activities",
			zap.String("trip_id", tripID.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return uc.RecomputeTripRouteFrom(ctx, tripID, mode, records)
}

// RecomputeTripRouteFrom пересчитывает маршрут по уже загруженным
// активностям и перезаписывает кеш. Парная операция к PrefetchActivities.
func (uc *TripRouteUseCase) RecomputeTripRouteFrom(
	ctx context.Context,
	tripID uuid.UUID,
	mode domain.TransportMode,
	records []domain.ActivityRecord,
) (*domain.ItineraryRoute, error) {
	if !mode.Valid() {
		return nil, errors.ErrInvalidTransportMode
	}

	route, err := uc.itineraryUC.ComputeRoutes(ctx, records, mode)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetTripRoute(ctx, tripID, mode, route, uc.cacheTTL); err != nil {
		uc.logger.Warn("Trip route cache write failed",
			zap.String("trip_id", tripID.String()),
			zap.Error(err))
	}

	return route, nil
}
