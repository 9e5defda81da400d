package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/itinerary-service/internal/domain"
	"github.com/itinerary-service/internal/pkg/errors"
	"github.com/itinerary-service/internal/pkg/utils"
	"github.com/itinerary-service/internal/pkg/validator"
	"github.com/itinerary-service/internal/usecase"
	"github.com/itinerary-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// RouteHandler - обработчик расчёта маршрутов
type RouteHandler struct {
	itineraryUC *usecase.ItineraryUseCase
	tripRouteUC *usecase.TripRouteUseCase
	logger      *zap.Logger
}

// NewRouteHandler - создание нового RouteHandler
func NewRouteHandler(
	itineraryUC *usecase.ItineraryUseCase,
	tripRouteUC *usecase.TripRouteUseCase,
	logger *zap.Logger,
) *RouteHandler {
	return &RouteHandler{
		itineraryUC: itineraryUC,
		tripRouteUC: tripRouteUC,
		logger:      logger,
	}
}

// ComputeRoutes godoc
// @Summary Расчёт маршрута по списку активностей
// @Description Сортирует активности по времени начала, строит маршрут между последовательными парами через движок маршрутизации и возвращает сегменты с геометрией и итоговыми дистанцией/временем. Активности без валидных координат исключаются; при отказе движка по leg возвращается прямая линия со статусом error.
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body dto.ComputeRoutesRequest true "Активности и режим передвижения"
// @Success 200 {object} utils.SuccessResponse{data=dto.RouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/routes/compute [post]
func (h *RouteHandler) ComputeRoutes(c *fiber.Ctx) error {
	var req dto.ComputeRoutesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	// Валидация
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	route, err := h.itineraryUC.ComputeRoutes(c.Context(), req.Records(), domain.TransportMode(req.Mode))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.NewRouteResponse(route), &utils.Meta{
		Total: len(route.Segments),
	})
}

// GetTripRoute godoc
// @Summary Маршрут поездки
// @Description Возвращает маршрут по активностям поездки для выбранного режима передвижения. Результат кешируется; повторные запросы отдаются из кеша до инвалидации.
// @Tags Routes
// @Accept json
// @Produce json
// @Param trip_id path string true "ID поездки (UUID)"
// @Param mode query string false "Режим передвижения (walking, driving, cycling)" default(walking)
// @Success 200 {object} utils.SuccessResponse{data=dto.TripRouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/trips/{trip_id}/route [get]
func (h *RouteHandler) GetTripRoute(c *fiber.Ctx) error {
	tripID, err := uuid.Parse(c.Params("trip_id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidTripID)
	}

	mode := domain.TransportMode(c.Query("mode", string(domain.ModeWalking)))

	route, cached, err := h.tripRouteUC.GetTripRoute(c.Context(), tripID, mode)
	if err != nil {
		return utils.SendError(c, err)
	}

	resp := &dto.TripRouteResponse{
		TripID:        tripID.String(),
		Mode:          mode.String(),
		Cached:        cached,
		RouteResponse: dto.NewRouteResponse(route),
	}

	return utils.SendSuccess(c, resp, &utils.Meta{
		Total:  len(route.Segments),
		Cached: cached,
	})
}
