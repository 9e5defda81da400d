package usecase

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/itinerary-service/internal/domain"
	"github.com/itinerary-service/internal/domain/repository"
	"github.com/itinerary-service/internal/pkg/errors"
	"github.com/itinerary-service/internal/pkg/utils"
)

// ItineraryUseCase - расчёт маршрута по активностям поездки.
// Не держит состояния между вызовами: безопасен для конкурентного
// использования из нескольких обработчиков.
type ItineraryUseCase struct {
	routingRepo repository.RoutingRepository
	logger      *zap.Logger
}

// NewItineraryUseCase - создание нового ItineraryUseCase
func NewItineraryUseCase(routingRepo repository.RoutingRepository, logger *zap.Logger) *ItineraryUseCase {
	return &ItineraryUseCase{
		routingRepo: routingRepo,
		logger:      logger,
	}
}

// ComputeRoutes строит маршрут по активностям:
// 1. Активности без валидных координат исключаются
// 2. Остаток сортируется по start_time (stable: равные времена сохраняют
// входной порядок, иначе маршрут визуально перемешивается)
// 3. Меньше двух локализованных активностей - пустой маршрут без
// единого сетевого вызова
// 4. Все n-1 legs запрашиваются конкурентно; порядок сегментов
// восстанавливается по индексу, а не по порядку ответов
// 5. Отказ движка по leg даёт fallback-сегмент со статусом error и
// прямой линией между точками; итоги включают только измеренные legs
func (uc *ItineraryUseCase) ComputeRoutes(
	ctx context.Context,
	records []domain.ActivityRecord,
	mode domain.TransportMode,
) (*domain.ItineraryRoute, error) {
	if !mode.Valid() {
		return nil, errors.ErrInvalidTransportMode
	}

	located := domain.ParseLocatedActivities(records)

	sort.SliceStable(located, func(i, j int) bool {
		return located[i].StartTime.Before(located[j].StartTime)
	})

	if len(located) < 2 {
		uc.logger.Debug("Not enough located activities for routing",
			zap.Int("total", len(records)),
			zap.Int("located", len(located)))
		return &domain.ItineraryRoute{Segments: []domain.RouteSegment{}}, nil
	}

	segments := make([]domain.RouteSegment, len(located)-1)
	for i := 0; i < len(segments); i++ {
		segments[i] = domain.RouteSegment{
			FromActivityID: located[i].ID,
			ToActivityID:   located[i+1].ID,
			Status:         domain.SegmentPending,
		}
	}

	// Legs независимы и движок не навязывает rate-limit на route API,
	// поэтому запрашиваем все сразу. Каждая горутина пишет только в свой
	// индекс.
	var wg sync.WaitGroup
	for i := 0; i < len(segments); i++ {
		wg.Add(1)
		go func(i int, from, to domain.LocatedActivity) {
			defer wg.Done()

			segments[i].Status = domain.SegmentLoading

			leg, err := uc.routingRepo.GetRoute(ctx, from.Coordinate(), to.Coordinate(), mode)
			if err != nil || leg == nil {
				// Оценка по прямой даёт операторам порядок неучтённого
				// расстояния; в итоги и leg она не попадает
				straightLine := utils.HaversineDistance(
					from.Coordinate().Lat, from.Coordinate().Lng,
					to.Coordinate().Lat, to.Coordinate().Lng)
				if err != nil {
					uc.logger.Warn("Leg routing failed, using straight-line fallback",
						zap.String("from_activity", from.ID),
						zap.String("to_activity", to.ID),
						zap.Float64("straight_line_m", straightLine),
						zap.Error(err))
				} else {
					uc.logger.Debug("No route between activities, using straight-line fallback",
						zap.String("from_activity", from.ID),
						zap.String("to_activity", to.ID),
						zap.Float64("straight_line_m", straightLine))
				}
				segments[i].Leg = domain.FallbackLeg(from.Coordinate(), to.Coordinate(), mode)
				segments[i].Status = domain.SegmentError
				return
			}

			segments[i].Leg = *leg
			segments[i].Status = domain.SegmentSuccess
		}(i, located[i], located[i+1])
	}
	wg.Wait()

	route := &domain.ItineraryRoute{Segments: segments}
	for _, seg := range segments {
		if seg.Leg.Measured {
			route.TotalDistanceMeters += seg.Leg.DistanceMeters
			route.TotalDurationSeconds += seg.Leg.DurationSeconds
			route.RoutedLegs++
		} else {
			route.UnroutedLegs++
		}
	}

	uc.logger.Debug("Itinerary route computed",
		zap.String("mode", mode.String()),
		zap.Int("segments", len(segments)),
		zap.Int("routed", route.RoutedLegs),
		zap.Int("unrouted", route.UnroutedLegs))

	return route, nil
}
