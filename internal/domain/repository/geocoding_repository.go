package repository

import (
	"context"

	"github.com/itinerary-service/internal/domain"
)

// GeocodingRepository - доступ к внешнему сервису геокодирования
type GeocodingRepository interface {
	// SearchCities ищет населённые пункты по текстовому запросу.
	// Запросы короче 2 символов возвращают пустой результат без
	// обращения к сети.
	SearchCities(ctx context.Context, query string, limit int) ([]domain.CitySearchResult, error)

	// ReverseGeocode определяет населённый пункт по координатам.
	// Возвращает (nil, nil), если место не найдено.
	ReverseGeocode(ctx context.Context, lat, lng float64) (*domain.CitySearchResult, error)
}
