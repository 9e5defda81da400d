package dto

import (
	"time"

	"github.com/itinerary-service/internal/domain"
	"github.com/itinerary-service/internal/pkg/utils"
)

// ActivityInput - активность в том виде, в котором её присылает
// trip-backend: координаты опциональны и закодированы строками
type ActivityInput struct {
	ID          string    `json:"id" validate:"required"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	LocationLat *string   `json:"location_lat"`
	LocationLng *string   `json:"location_lng"`
}

// ComputeRoutesRequest - запрос на расчёт маршрута по списку активностей
type ComputeRoutesRequest struct {
	Activities []ActivityInput `json:"activities" validate:"required,dive"`
	Mode       string          `json:"mode" validate:"required,oneof=walking driving cycling"`
}

// Records преобразует входные активности в доменные записи
func (r *ComputeRoutesRequest) Records() []domain.ActivityRecord {
	records := make([]domain.ActivityRecord, len(r.Activities))
	for i, a := range r.Activities {
		records[i] = domain.ActivityRecord{
			ID:          a.ID,
			StartTime:   a.StartTime,
			LocationLat: a.LocationLat,
			LocationLng: a.LocationLng,
		}
	}
	return records
}

// RouteResponse - вычисленный маршрут с готовым к отображению текстом итогов
type RouteResponse struct {
	Segments             []domain.RouteSegment `json:"segments"`
	TotalDistanceMeters  float64               `json:"total_distance_meters"`
	TotalDurationSeconds float64               `json:"total_duration_seconds"`
	TotalDistanceText    string                `json:"total_distance_text"`
	TotalDurationText    string                `json:"total_duration_text"`
	RoutedLegs           int                   `json:"routed_legs"`
	UnroutedLegs         int                   `json:"unrouted_legs"`
	Partial              bool                  `json:"partial"`
}

// NewRouteResponse строит ответ из доменного маршрута
func NewRouteResponse(route *domain.ItineraryRoute) *RouteResponse {
	return &RouteResponse{
		Segments:             route.Segments,
		TotalDistanceMeters:  route.TotalDistanceMeters,
		TotalDurationSeconds: route.TotalDurationSeconds,
		TotalDistanceText:    utils.FormatDistance(route.TotalDistanceMeters),
		TotalDurationText:    utils.FormatDuration(route.TotalDurationSeconds),
		RoutedLegs:           route.RoutedLegs,
		UnroutedLegs:         route.UnroutedLegs,
		Partial:              route.Partial(),
	}
}

// TripRouteResponse - маршрут поездки из кеша или вычисленный на месте
type TripRouteResponse struct {
	TripID string `json:"trip_id"`
	Mode   string `json:"mode"`
	Cached bool   `json:"cached"`
	*RouteResponse
}
