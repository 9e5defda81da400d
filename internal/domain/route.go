package domain

// SegmentStatus - жизненный цикл сегмента маршрута
type SegmentStatus string

const (
	SegmentPending SegmentStatus = "pending"
	SegmentLoading SegmentStatus = "loading"
	SegmentSuccess SegmentStatus = "success"
	SegmentError   SegmentStatus = "error"
)

// RouteLeg - путь между двумя последовательными активностями.
// Measured=false означает синтетический fallback: Path содержит только две
// крайние точки, а дистанция/длительность неизвестны (не ноль).
type RouteLeg struct {
	From            Coordinate    `json:"from"`
	To              Coordinate    `json:"to"`
	DistanceMeters  float64       `json:"distance_meters"`
	DurationSeconds float64       `json:"duration_seconds"`
	Path            []Coordinate  `json:"path"`
	Mode            TransportMode `json:"mode"`
	Measured        bool          `json:"measured"`
}

// FallbackLeg строит прямолинейный leg для пары точек, когда движок
// маршрутизации недоступен или не нашёл маршрут.
func FallbackLeg(from, to Coordinate, mode TransportMode) RouteLeg {
	return RouteLeg{
		From:     from,
		To:       to,
		Path:     []Coordinate{from, to},
		Mode:     mode,
		Measured: false,
	}
}

// RouteSegment - leg, привязанный к паре активностей
type RouteSegment struct {
	FromActivityID string        `json:"from_activity_id"`
	ToActivityID   string        `json:"to_activity_id"`
	Leg            RouteLeg      `json:"leg"`
	Status         SegmentStatus `json:"status"`
}

// ItineraryRoute - итоговый маршрут по всем активностям дня/поездки.
// Totals включают только измеренные legs; RoutedLegs/UnroutedLegs позволяют
// вызывающему отличить полный результат от частичного.
type ItineraryRoute struct {
	Segments             []RouteSegment `json:"segments"`
	TotalDistanceMeters  float64        `json:"total_distance_meters"`
	TotalDurationSeconds float64        `json:"total_duration_seconds"`
	RoutedLegs           int            `json:"routed_legs"`
	UnroutedLegs         int            `json:"unrouted_legs"`
}

// Partial сообщает, есть ли в маршруте неизмеренные legs
func (r *ItineraryRoute) Partial() bool {
	return r.UnroutedLegs > 0
}

// MultiPointRoute - результат одного запроса по цепочке из N точек.
// Legs идут в порядке точек; Geometry - полная геометрия маршрута.
type MultiPointRoute struct {
	Legs                 []RouteLeg   `json:"legs"`
	TotalDistanceMeters  float64      `json:"total_distance_meters"`
	TotalDurationSeconds float64      `json:"total_duration_seconds"`
	Geometry             []Coordinate `json:"geometry"`
}
