package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/itinerary-service/internal/domain"
	"github.com/itinerary-service/internal/domain/repository"
	"github.com/itinerary-service/internal/pkg/errors"
	"github.com/itinerary-service/internal/pkg/utils"
	"github.com/itinerary-service/internal/usecase/dto"
)

// GeocodingUseCase - use case для поиска и геокодирования населённых пунктов
type GeocodingUseCase struct {
	geocodingRepo repository.GeocodingRepository
	logger        *zap.Logger
}

// NewGeocodingUseCase - создание нового GeocodingUseCase
func NewGeocodingUseCase(geocodingRepo repository.GeocodingRepository, logger *zap.Logger) *GeocodingUseCase {
	return &GeocodingUseCase{
		geocodingRepo: geocodingRepo,
		logger:        logger,
	}
}

// SearchCities - поиск населённых пунктов по текстовому запросу.
// Недоступность геокодера деградирует до пустого результата с флагом
// degraded: наружу из этого use case ошибки внешней зависимости не выходят.
func (uc *GeocodingUseCase) SearchCities(ctx context.Context, req dto.CitySearchRequest) (*dto.CitySearchResponse, error) {
	if req.Limit == 0 {
		req.Limit = 10
	}

	results, err := uc.geocodingRepo.SearchCities(ctx, req.Query, req.Limit)
	if err != nil {
		uc.logger.Warn("Geocoder unavailable, returning empty results",
			zap.String("query", req.Query),
			zap.Error(err))
		return &dto.CitySearchResponse{
			Results:  []domain.CitySearchResult{},
			Degraded: true,
		}, nil
	}

	return &dto.CitySearchResponse{
		Results: results,
		Total:   len(results),
	}, nil
}

// ReverseGeocode - обратное геокодирование координат
func (uc *GeocodingUseCase) ReverseGeocode(ctx context.Context, req dto.ReverseGeocodeRequest) (*dto.ReverseGeocodeResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	result, err := uc.geocodingRepo.ReverseGeocode(ctx, req.Lat, req.Lng)
	if err != nil {
		uc.logger.Warn("Reverse geocoding failed",
			zap.Float64("lat", req.Lat),
			zap.Float64("lng", req.Lng),
			zap.Error(err))
		return &dto.ReverseGeocodeResponse{Degraded: true}, nil
	}

	return &dto.ReverseGeocodeResponse{
		Result: result,
		Found:  result != nil,
	}, nil
}
