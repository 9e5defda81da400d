package main

// @title Itinerary Routing Service API
// @version 1.0.0
// @description Сервис расчёта маршрутов для планировщика поездок. Принимает упорядоченный по времени список активностей с координатами, строит пешие/авто/вело маршруты между ними через внешний движок маршрутизации и возвращает сегменты с геометрией и итогами по дистанции и времени.
// @description
// @description Основные возможности:
// @description - Расчёт маршрута по активностям с деградацией до прямой линии при отказе движка
// @description - Кешируемые маршруты поездок из основной БД
// @description - Геокодирование населённых пунктов (прямое и обратное) с rate-limit политикой Nominatim

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/itinerary-service/docs"
	"github.com/itinerary-service/internal/config"
	httpDelivery "github.com/itinerary-service/internal/delivery/http"
	"github.com/itinerary-service/internal/delivery/http/handler"
	"github.com/itinerary-service/internal/infrastructure/nominatim"
	"github.com/itinerary-service/internal/infrastructure/osrm"
	"github.com/itinerary-service/internal/pkg/logger"
	"github.com/itinerary-service/internal/repository/cache"
	"github.com/itinerary-service/internal/repository/postgres"
	"github.com/itinerary-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Itinerary Routing Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("routing_engine", cfg.Routing.BaseURL),
		zap.String("geocoder", cfg.Geocoder.BaseURL),
	)

	// 3. Connect to PostgreSQL (trip-backend database, read-only here)
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	activityRepo := postgres.NewActivityRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	// Внешние клиенты: один экземпляр геокодера на процесс - внутри него
	// живут кеш запросов и rate-limit часы
	geocodingRepo := nominatim.NewNominatimClient(&cfg.Geocoder, log)
	routingRepo := osrm.NewOSRMClient(&cfg.Routing, log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	itineraryUC := usecase.NewItineraryUseCase(routingRepo, log)

	tripRouteUC := usecase.NewTripRouteUseCase(
		activityRepo,
		cacheRepo,
		itineraryUC,
		log,
		cfg.Cache.RouteCacheTTL,
	)

	geocodingUC := usecase.NewGeocodingUseCase(geocodingRepo, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	routeHandler := handler.NewRouteHandler(itineraryUC, tripRouteUC, log)
	geocodingHandler := handler.NewGeocodingHandler(geocodingUC, log)

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		routeHandler,
		geocodingHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
