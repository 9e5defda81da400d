package dto

import "github.com/itinerary-service/internal/domain"

// CitySearchRequest - запрос на поиск населённых пунктов.
// Запросы короче 2 символов не являются ошибкой: они дают пустой
// результат без обращения к геокодеру.
type CitySearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=40"`
}

// CitySearchResponse - результаты поиска.
// Degraded=true означает, что геокодер был недоступен и результаты
// пусты не потому, что ничего не найдено.
type CitySearchResponse struct {
	Results  []domain.CitySearchResult `json:"results"`
	Total    int                       `json:"total"`
	Degraded bool                      `json:"degraded,omitempty"`
}

// ReverseGeocodeRequest - запрос на обратное геокодирование
type ReverseGeocodeRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// ReverseGeocodeResponse - результат обратного геокодирования.
// Result=nil означает, что населённый пункт не найден.
type ReverseGeocodeResponse struct {
	Result   *domain.CitySearchResult `json:"result"`
	Found    bool                     `json:"found"`
	Degraded bool                     `json:"degraded,omitempty"`
}
