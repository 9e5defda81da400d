package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/itinerary-service/internal/domain"
)

// ActivityRepository - чтение активностей поездки из основной БД.
// Сервис маршрутизации не владеет CRUD поездок - только читает.
type ActivityRepository interface {
	// GetByTripID возвращает все активности поездки в произвольном порядке
	GetByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.ActivityRecord, error)

	// GetByTripIDs возвращает активности нескольких поездок, сгруппированные
	// по trip_id. Каждый запрошенный trip_id присутствует в результате,
	// поездка без активностей - пустой срез.
	GetByTripIDs(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID][]domain.ActivityRecord, error)
}
