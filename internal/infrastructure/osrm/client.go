package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/itinerary-service/internal/config"
	"github.com/itinerary-service/internal/domain"
	"github.com/itinerary-service/internal/domain/repository"
	"github.com/itinerary-service/internal/pkg/polyline"
	"go.uber.org/zap"
)

// routeResponse - ответ OSRM route API
type routeResponse struct {
	Code   string  `json:"code"`
	Routes []route `json:"routes"`
}

type route struct {
	Distance float64    `json:"distance"`
	Duration float64    `json:"duration"`
	Geometry string     `json:"geometry"`
	Legs     []routeLeg `json:"legs"`
}

type routeLeg struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewOSRMClient создает новый клиент для OSRM route API
func NewOSRMClient(cfg *config.RoutingConfig, logger *zap.Logger) repository.RoutingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}
}

// GetRoute запрашивает маршрут между двумя точками.
// Любой сбой (транспортный, не-2xx, code != "Ok", пустые routes)
// означает "маршрута нет" и возвращается как (nil, nil):
// это ожидаемый исход, fallback выбирает вызывающий. Ретраев нет.
func (c *client) GetRoute(ctx context.Context, from, to domain.Coordinate, mode domain.TransportMode) (*domain.RouteLeg, error) {
	resp, ok := c.fetchRoute(ctx, []domain.Coordinate{from, to}, mode)
	if !ok {
		return nil, nil
	}

	r := resp.Routes[0]
	return &domain.RouteLeg{
		From:            from,
		To:              to,
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
		Path:            polyline.Decode(r.Geometry),
		Mode:            mode,
		Measured:        true,
	}, nil
}

// GetMultiPointRoute запрашивает один маршрут по цепочке из >=2 точек
// с per-leg разбивкой из legs[]
func (c *client) GetMultiPointRoute(ctx context.Context, points []domain.Coordinate, mode domain.TransportMode) (*domain.MultiPointRoute, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("multi-point route requires at least 2 points, got %d", len(points))
	}

	resp, ok := c.fetchRoute(ctx, points, mode)
	if !ok {
		return nil, nil
	}

	r := resp.Routes[0]

	legs := make([]domain.RouteLeg, 0, len(r.Legs))
	for i, l := range r.Legs {
		if i+1 >= len(points) {
			break
		}
		legs = append(legs, domain.RouteLeg{
			From:            points[i],
			To:              points[i+1],
			DistanceMeters:  l.Distance,
			DurationSeconds: l.Duration,
			Mode:            mode,
			Measured:        true,
		})
	}

	return &domain.MultiPointRoute{
		Legs:                 legs,
		TotalDistanceMeters:  r.Distance,
		TotalDurationSeconds: r.Duration,
		Geometry:             polyline.Decode(r.Geometry),
	}, nil
}

// fetchRoute выполняет запрос и валидирует ответ.
// ok=false означает "маршрута нет" по любой из причин.
func (c *client) fetchRoute(ctx context.Context, points []domain.Coordinate, mode domain.TransportMode) (*routeResponse, bool) {
	// OSRM ожидает в пути долготу перед широтой
	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = strconv.FormatFloat(p.Lng, 'f', 6, 64) + "," +
			strconv.FormatFloat(p.Lat, 'f', 6, 64)
	}

	reqURL := fmt.Sprintf("%s/route/v1/%s/%s?geometries=polyline&overview=full",
		c.baseURL, mode, strings.Join(coords, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create OSRM request", zap.Error(err))
		return nil, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("OSRM request failed",
			zap.String("mode", mode.String()),
			zap.Error(err))
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("OSRM returned non-OK status",
			zap.Int("status_code", resp.StatusCode),
			zap.String("mode", mode.String()))
		return nil, false
	}

	var routeResp routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&routeResp); err != nil {
		c.logger.Warn("Failed to decode OSRM response", zap.Error(err))
		return nil, false
	}

	if routeResp.Code != "Ok" || len(routeResp.Routes) == 0 {
		c.logger.Debug("OSRM found no route",
			zap.String("code", routeResp.Code),
			zap.Int("routes", len(routeResp.Routes)))
		return nil, false
	}

	return &routeResp, true
}
