package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ActivityRecord - активность в том виде, в котором её отдаёт слой
// управления поездками: координаты опциональны и закодированы строками
// (decimal-колонки сериализуются как строки).
type ActivityRecord struct {
	ID          string    `json:"id" db:"id"`
	StartTime   time.Time `json:"start_time" db:"start_time"`
	LocationLat *string   `json:"location_lat" db:"location_lat"`
	LocationLng *string   `json:"location_lng" db:"location_lng"`
}

// LocatedActivity - активность с валидными числовыми координатами.
// Инвариант: в маршрутизацию никогда не попадает активность с NaN
// или координатами вне диапазона.
type LocatedActivity struct {
	ID        string
	Lat       float64
	Lng       float64
	StartTime time.Time
}

// Coordinate возвращает точку активности
func (a LocatedActivity) Coordinate() Coordinate {
	return Coordinate{Lat: a.Lat, Lng: a.Lng}
}

// ParseLocatedActivities отбирает активности с валидными координатами.
// Записи с отсутствующими, нечисловыми или выходящими за диапазон
// координатами молча исключаются - это ожидаемое качество данных,
// а не ошибка.
func ParseLocatedActivities(records []ActivityRecord) []LocatedActivity {
	located := make([]LocatedActivity, 0, len(records))

	for _, rec := range records {
		lat, ok := parseCoordinate(rec.LocationLat, 90)
		if !ok {
			continue
		}
		lng, ok := parseCoordinate(rec.LocationLng, 180)
		if !ok {
			continue
		}

		located = append(located, LocatedActivity{
			ID:        rec.ID,
			Lat:       lat,
			Lng:       lng,
			StartTime: rec.StartTime,
		})
	}

	return located
}

func parseCoordinate(raw *string, bound float64) (float64, bool) {
	if raw == nil {
		return 0, false
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v < -bound || v > bound {
		return 0, false
	}
	return v, true
}
