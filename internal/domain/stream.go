package domain

import "github.com/google/uuid"

// Stream names (должны совпадать с trip-backend)
const (
	StreamTripRouteInvalidate = "stream:trips:route-invalidate"
)

// TripRouteEvent - событие инвалидации маршрута поездки: состав или
// времена активностей изменились, закешированный маршрут устарел.
// Пустой Mode означает "пересчитать все режимы".
type TripRouteEvent struct {
	TripID uuid.UUID     `json:"trip_id"`
	Mode   TransportMode `json:"mode,omitempty"`
}

// Modes возвращает список режимов, которые нужно пересчитать
func (e *TripRouteEvent) Modes() []TransportMode {
	if e.Mode != "" {
		return []TransportMode{e.Mode}
	}
	return []TransportMode{ModeWalking, ModeDriving, ModeCycling}
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
