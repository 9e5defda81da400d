package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/itinerary-service/internal/pkg/errors"
	"github.com/itinerary-service/internal/pkg/utils"
	"github.com/itinerary-service/internal/pkg/validator"
	"github.com/itinerary-service/internal/usecase"
	"github.com/itinerary-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// GeocodingHandler - обработчик геокодирования
type GeocodingHandler struct {
	geocodingUC *usecase.GeocodingUseCase
	logger      *zap.Logger
}

// NewGeocodingHandler - создание нового GeocodingHandler
func NewGeocodingHandler(geocodingUC *usecase.GeocodingUseCase, logger *zap.Logger) *GeocodingHandler {
	return &GeocodingHandler{
		geocodingUC: geocodingUC,
		logger:      logger,
	}
}

// SearchCities godoc
// @Summary Поиск населённых пунктов по названию
// @Description Геокодирует текстовый запрос в список населённых пунктов (город, посёлок, деревня). Запросы короче 2 символов возвращают пустой список. При недоступности геокодера возвращается пустой список с флагом degraded.
// @Tags Geocoding
// @Accept json
// @Produce json
// @Param q query string true "Поисковый запрос (минимум 2 символа)"
// @Param limit query int false "Максимальное количество результатов" default(10)
// @Success 200 {object} utils.SuccessResponse{data=dto.CitySearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geocoding/search [get]
func (h *GeocodingHandler) SearchCities(c *fiber.Ctx) error {
	var req dto.CitySearchRequest
	req.Query = c.Query("q")
	req.Limit = c.QueryInt("limit", 10)

	// Валидация
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.geocodingUC.SearchCities(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:    result.Total,
		Degraded: result.Degraded,
	})
}

// ReverseGeocode godoc
// @Summary Обратное геокодирование
// @Description Определяет ближайший населённый пункт по координатам
// @Tags Geocoding
// @Accept json
// @Produce json
// @Param lat query number true "Широта [-90, 90]"
// @Param lon query number true "Долгота [-180, 180]"
// @Success 200 {object} utils.SuccessResponse{data=dto.ReverseGeocodeResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geocoding/reverse [get]
func (h *GeocodingHandler) ReverseGeocode(c *fiber.Ctx) error {
	// Отсутствующий параметр не равен нулевой координате
	if c.Query("lat") == "" || c.Query("lon") == "" {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": "lat and lon query parameters are required",
		}))
	}

	var req dto.ReverseGeocodeRequest
	req.Lat = c.QueryFloat("lat")
	req.Lng = c.QueryFloat("lon")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.geocodingUC.ReverseGeocode(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Degraded: result.Degraded,
	})
}
