package repository

import (
	"context"

	"github.com/itinerary-service/internal/domain"
)

// RoutingRepository - доступ к внешнему движку маршрутизации
type RoutingRepository interface {
	// GetRoute запрашивает маршрут между двумя точками.
	// "Маршрут не найден" - ожидаемый исход: возвращается (nil, nil),
	// fallback остаётся на вызывающем. Ретраев внутри нет.
	GetRoute(ctx context.Context, from, to domain.Coordinate, mode domain.TransportMode) (*domain.RouteLeg, error)

	// GetMultiPointRoute запрашивает один маршрут по цепочке из >=2 точек
	// c per-leg разбивкой - для вызывающих, предпочитающих один сетевой
	// вызов вместо N-1.
	GetMultiPointRoute(ctx context.Context, points []domain.Coordinate, mode domain.TransportMode) (*domain.MultiPointRoute, error)
}
