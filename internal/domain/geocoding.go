package domain

// CitySearchResult - результат геокодирования населённого пункта
type CitySearchResult struct {
	PlaceID     int64   `json:"place_id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
}

// cityPlaceTypes - типы мест Nominatim, которые считаем населёнными пунктами.
// Уличные и POI-уровневые результаты отбрасываются.
var cityPlaceTypes = map[string]struct{}{
	"city":           {},
	"town":           {},
	"village":        {},
	"municipality":   {},
	"administrative": {},
}

// IsCityPlaceType проверяет, относится ли тип места к населённым пунктам
func IsCityPlaceType(placeType string) bool {
	_, ok := cityPlaceTypes[placeType]
	return ok
}
