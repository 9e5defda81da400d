package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/itinerary-service/internal/config"
	"github.com/itinerary-service/internal/domain"
	"github.com/itinerary-service/internal/domain/repository"
	"go.uber.org/zap"
)

const minQueryLength = 2

// nominatimPlace - место в ответе Nominatim
type nominatimPlace struct {
	PlaceID     int64            `json:"place_id"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Name        string           `json:"name"`
	DisplayName string           `json:"display_name"`
	Type        string           `json:"type"`
	Address     nominatimAddress `json:"address"`
}

type nominatimAddress struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	Country      string `json:"country"`
	CountryCode  string `json:"country_code"`
}

// cacheEntry - закешированный отфильтрованный (до усечения) список результатов
type cacheEntry struct {
	results  []domain.CitySearchResult
	cachedAt time.Time
}

type client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	acceptLanguage string
	minInterval    time.Duration
	cacheTTL       time.Duration
	logger         *zap.Logger

	// Глобальные для процесса часы последнего запроса: политика Nominatim
	// требует не чаще одного запроса в секунду на весь сервис
	gateMu      sync.Mutex
	nextRequest time.Time

	cacheMu sync.Mutex
	cache   map[string]cacheEntry
}

// NewNominatimClient создает новый клиент для Nominatim API.
// Кеш результатов и часы rate-limit живут внутри экземпляра;
// на процесс создаётся один экземпляр.
func NewNominatimClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocodingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:      cfg.UserAgent,
		acceptLanguage: cfg.AcceptLanguage,
		minInterval:    cfg.MinInterval,
		cacheTTL:       cfg.CacheTTL,
		logger:         logger,
		cache:          make(map[string]cacheEntry),
	}
}

// SearchCities ищет населённые пункты по текстовому запросу
func (c *client) SearchCities(ctx context.Context, query string, limit int) ([]domain.CitySearchResult, error) {
	trimmed := strings.TrimSpace(query)
	// Считаем руны, не байты: однобуквенный не-ASCII запрос тоже короткий
	if utf8.RuneCountInString(trimmed) < minQueryLength {
		return []domain.CitySearchResult{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	normalized := strings.ToLower(trimmed)
	if cached, ok := c.cacheLookup(normalized); ok {
		c.logger.Debug("Geocoder cache hit", zap.String("query", normalized))
		return truncate(cached, limit), nil
	}

	// Запрашиваем у Nominatim с запасом: фильтрация по типу места
	// отбрасывает часть результатов
	upstreamLimit := limit
	if upstreamLimit < 10 {
		upstreamLimit = 10
	}

	params := url.Values{}
	params.Set("q", trimmed)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(upstreamLimit))
	params.Set("featuretype", "city")
	params.Set("accept-language", c.acceptLanguage)

	var places []nominatimPlace
	if err := c.doRequest(ctx, "/search?"+params.Encode(), &places); err != nil {
		// Ошибки не кешируются: следующий вызов повторит запрос
		return nil, err
	}

	filtered := make([]domain.CitySearchResult, 0, len(places))
	for _, p := range places {
		if !domain.IsCityPlaceType(p.Type) {
			continue
		}
		result, ok := mapPlace(p)
		if !ok {
			continue
		}
		filtered = append(filtered, result)
	}

	c.cacheStore(normalized, filtered)

	c.logger.Debug("Geocoder search completed",
		zap.String("query", normalized),
		zap.Int("raw_count", len(places)),
		zap.Int("filtered_count", len(filtered)))

	return truncate(filtered, limit), nil
}

// ReverseGeocode определяет населённый пункт по координатам.
// 404 от Nominatim означает "места нет" и возвращается как (nil, nil).
func (c *client) ReverseGeocode(ctx context.Context, lat, lng float64) (*domain.CitySearchResult, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("zoom", "10")

	var place nominatimPlace
	if err := c.doRequest(ctx, "/reverse?"+params.Encode(), &place); err != nil {
		if err == errNotFound {
			return nil, nil
		}
		return nil, err
	}

	result, ok := mapPlace(place)
	if !ok {
		return nil, nil
	}
	return &result, nil
}

var errNotFound = fmt.Errorf("place not found")

// doRequest выполняет запрос к Nominatim, предварительно отстояв очередь
// в rate-limit гейте
func (c *client) doRequest(ctx context.Context, pathAndQuery string, out interface{}) error {
	if err := c.waitTurn(ctx); err != nil {
		return err
	}

	reqURL := c.baseURL + pathAndQuery

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Nominatim request failed", zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Nominatim API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("nominatim API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode Nominatim response", zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// waitTurn резервирует слот в очереди запросов и ждёт его наступления.
// Вызовы сериализуются через общие часы, никогда не отбрасываются:
// contention выражается только в добавленной задержке.
func (c *client) waitTurn(ctx context.Context) error {
	c.gateMu.Lock()
	now := time.Now()
	slot := c.nextRequest
	if slot.Before(now) {
		slot = now
	}
	c.nextRequest = slot.Add(c.minInterval)
	c.gateMu.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *client) cacheLookup(key string) ([]domain.CitySearchResult, bool) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.cachedAt) >= c.cacheTTL {
		// Ленивое вытеснение: просроченная запись никогда не возвращается
		delete(c.cache, key)
		return nil, false
	}
	return entry.results, true
}

func (c *client) cacheStore(key string, results []domain.CitySearchResult) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	c.cache[key] = cacheEntry{
		results:  results,
		cachedAt: time.Now(),
	}
}

// mapPlace преобразует место Nominatim в доменный результат.
// Имя выбирается по приоритету: city > town > village > municipality >
// исходное name > первый сегмент display_name до запятой.
func mapPlace(p nominatimPlace) (domain.CitySearchResult, bool) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return domain.CitySearchResult{}, false
	}
	lng, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return domain.CitySearchResult{}, false
	}

	name := p.Address.City
	if name == "" {
		name = p.Address.Town
	}
	if name == "" {
		name = p.Address.Village
	}
	if name == "" {
		name = p.Address.Municipality
	}
	if name == "" {
		name = p.Name
	}
	if name == "" {
		if idx := strings.Index(p.DisplayName, ","); idx > 0 {
			name = strings.TrimSpace(p.DisplayName[:idx])
		} else {
			name = p.DisplayName
		}
	}

	return domain.CitySearchResult{
		PlaceID:     p.PlaceID,
		Name:        name,
		DisplayName: p.DisplayName,
		Lat:         lat,
		Lng:         lng,
		Country:     p.Address.Country,
		CountryCode: p.Address.CountryCode,
	}, true
}

func truncate(results []domain.CitySearchResult, limit int) []domain.CitySearchResult {
	if len(results) <= limit {
		out := make([]domain.CitySearchResult, len(results))
		copy(out, results)
		return out
	}
	out := make([]domain.CitySearchResult, limit)
	copy(out, results[:limit])
	return out
}
