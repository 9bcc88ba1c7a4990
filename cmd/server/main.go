package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/config"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/handlers"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/middleware"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/models"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/repositories/mongodb"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/services"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/internal/utils"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/cache"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/database"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/logger"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/metrics"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/pkg/partners"
	"github.com/tpraukum44/RocketryBox-Backend-sub003/routes"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:       logger.LogLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		Output:      "stdout",
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	auditLogger, err := logger.NewAuditLogger(&logger.Config{
		Level:       logger.InfoLevel,
		Output:      "stdout",
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
	})
	if err != nil {
		log.Fatalf("Failed to initialize audit logger: %v", err)
	}

	m := metrics.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Backing stores
	db, err := database.NewMongoDB(ctx, &database.DatabaseConfig{
		URI:            cfg.Database.ConnectionURI(),
		Database:       cfg.Database.Database,
		AppName:        cfg.App.Name,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(ctx); err != nil {
		appLogger.WithError(err).Fatal("Failed to run migrations")
	}

	if config.IsDevelopment() {
		if err := database.Seed(ctx, db.Database); err != nil {
			appLogger.WithError(err).Warn("Failed to seed demo data")
		}
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		URL:          cfg.Redis.URL,
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	cacheService := services.NewCacheService(redisCache, appLogger, "rocketrybox", time.Hour)

	// Repositories
	pincodeRepo := mongodb.NewPincodeRepository(db.Database, cacheService)
	courierRepo := mongodb.NewCourierRepository(db.Database, cacheService)
	tariffRepo := mongodb.NewTariffRepository(db.Database)

	registry := buildPartnerRegistry(cfg.Couriers, appLogger)

	// Services
	zoneService := services.NewZoneService(cfg, pincodeRepo, appLogger)
	weightService := services.NewWeightService(cfg)
	pricingService := services.NewPricingService(cfg)
	tariffService := services.NewTariffService(tariffRepo, appLogger, m, cfg.Engine.TariffRefreshInterval)
	serviceabilityService := services.NewServiceabilityService(cfg, registry, cacheService, appLogger, m)
	courierService := services.NewCourierService(courierRepo, appLogger)
	pincodeService := services.NewPincodeService(pincodeRepo, appLogger)
	rateService := services.NewRateService(zoneService, weightService, tariffService, pricingService, serviceabilityService, courierRepo, appLogger, m)

	// Load the first rate card snapshot before taking traffic, then keep it
	// fresh in the background.
	refreshCtx, cancelRefresh := context.WithTimeout(ctx, 30*time.Second)
	if err := tariffService.RefreshNow(refreshCtx); err != nil {
		appLogger.WithError(err).Warn("Initial tariff snapshot load failed, quotes are unavailable until the next refresh")
	}
	cancelRefresh()
	tariffService.Start(ctx)
	defer tariffService.Stop()

	// Handlers
	rateHandler := handlers.NewRateHandler(rateService)
	tariffHandler := handlers.NewTariffHandler(tariffService, auditLogger)
	pincodeHandler := handlers.NewPincodeHandler(pincodeService, auditLogger)
	courierHandler := handlers.NewCourierHandler(courierService, auditLogger)
	healthHandler := handlers.NewHealthHandler(db, cacheService, tariffService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.MetricsMiddleware(m))

	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			appLogger.WithError(err).Warn("Failed to set trusted proxies")
		}
	}

	// Quote endpoints fan out to partner APIs, so they get a tighter cap
	// than the rest of the surface.
	quoteLimiter := middleware.RateLimitMiddleware(redisCache, utils.QuoteRateLimit, time.Minute)

	// API routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimitMiddleware(redisCache, utils.DefaultRateLimit, time.Minute))
	{
		routes.SetupRateRoutes(v1, rateHandler, cfg.Security.JWTSecret, quoteLimiter)
		routes.SetupTariffRoutes(v1, tariffHandler, cfg.Security.JWTSecret)
		routes.SetupPincodeRoutes(v1, pincodeHandler, cfg.Security.JWTSecret)
		routes.SetupCourierRoutes(v1, courierHandler, cfg.Security.JWTSecret)
	}

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	stop()
	appLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Forced shutdown")
	}
}

// buildPartnerRegistry wires one adapter per courier on the roster. Partners
// without configured credentials get the offline static adapter; the courier
// roster still gates modes and COD upstream of any adapter call.
func buildPartnerRegistry(cfg *config.CouriersConfig, log *logger.Logger) *partners.Registry {
	registry := partners.NewRegistry()

	apiByCode := map[models.CourierCode]*config.CourierAPIConfig{
		models.CourierDelhivery:   cfg.Delhivery,
		models.CourierBlueDart:    cfg.BlueDart,
		models.CourierDTDC:        cfg.DTDC,
		models.CourierXpressbees:  cfg.Xpressbees,
		models.CourierEcomExpress: cfg.EcomExpress,
	}

	for _, code := range models.AllCourierCodes {
		api := apiByCode[code]

		var adapter partners.Adapter
		if api != nil && api.APIKey != "" {
			adapter = newLiveAdapter(code, api)
		} else {
			log.WithCourier(string(code)).Warn("No API key configured, using static serviceability adapter")
			adapter = partners.NewStaticAdapter(string(code), nil, true, nil)
		}
		if adapter == nil {
			continue
		}

		if err := registry.Register(adapter); err != nil {
			log.WithCourier(string(code)).WithError(err).Error("Failed to register courier adapter")
		}
	}

	return registry
}

func newLiveAdapter(code models.CourierCode, api *config.CourierAPIConfig) partners.Adapter {
	adapterConfig := partners.AdapterConfig{
		BaseURL:           api.BaseURL,
		APIKey:            api.APIKey,
		Timeout:           api.Timeout,
		RequestsPerSecond: api.RequestsPerSecond,
	}

	switch code {
	case models.CourierDelhivery:
		return partners.NewDelhiveryAdapter(adapterConfig)
	case models.CourierBlueDart:
		return partners.NewBlueDartAdapter(adapterConfig)
	case models.CourierDTDC:
		return partners.NewDTDCAdapter(adapterConfig)
	case models.CourierXpressbees:
		return partners.NewXpressbeesAdapter(adapterConfig)
	case models.CourierEcomExpress:
		return partners.NewEcomExpressAdapter(adapterConfig)
	default:
		return nil
	}
}
