package domain

// Coordinate - географическая точка (широта/долгота, WGS84)
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TransportMode - профиль маршрутизации внешнего движка
type TransportMode string

const (
	ModeWalking TransportMode = "walking"
	ModeDriving TransportMode = "driving"
	ModeCycling TransportMode = "cycling"
)

// Valid проверяет, что режим поддерживается движком маршрутизации
func (m TransportMode) Valid() bool {
	switch m {
	case ModeWalking, ModeDriving, ModeCycling:
		return true
	}
	return false
}

func (m TransportMode) String() string {
	return string(m)
}
