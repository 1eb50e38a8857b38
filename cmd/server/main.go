package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/stockflow/backend/internal/application/catalog"
	inventoryapp "github.com/stockflow/backend/internal/application/inventory"
	salesapp "github.com/stockflow/backend/internal/application/sales"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/infrastructure/auth"
	"github.com/stockflow/backend/internal/infrastructure/cache"
	"github.com/stockflow/backend/internal/infrastructure/config"
	"github.com/stockflow/backend/internal/infrastructure/event"
	"github.com/stockflow/backend/internal/infrastructure/logger"
	"github.com/stockflow/backend/internal/infrastructure/persistence"
	"github.com/stockflow/backend/internal/interfaces/http/handler"
	"github.com/stockflow/backend/internal/interfaces/http/middleware"
	"github.com/stockflow/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting StockFlow Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	stockRepo := persistence.NewGormStockEntryRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo)
	inventoryService := inventoryapp.NewInventoryService(stockRepo, productRepo)
	salesService := salesapp.NewSalesService(saleRepo, productRepo, stockRepo, log)

	// Idempotency store backing the sale reconciler
	idempotencyStore, err := newIdempotencyStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Initialize event bus and the stock reconciliation handler.
	// Deduplication is keyed by sale ID so a re-published completion
	// event never decrements stock twice.
	eventBus := event.NewInMemoryEventBus(log)

	saleCompletedHandler := inventoryapp.NewSaleCompletedHandler(stockRepo, log)
	reconciler := event.NewIdempotentHandler(
		saleCompletedHandler,
		idempotencyStore,
		log,
		event.WithIdempotencyConfig(shared.IdempotencyConfig{
			TTL:     cfg.Event.IdempotencyTTL,
			Enabled: true,
		}),
		event.WithIdempotencyKeyFunc(inventoryapp.SaleIdempotencyKey),
	)
	eventBus.Subscribe(reconciler, saleCompletedHandler.EventTypes()...)
	log.Info("Event handlers registered",
		zap.Strings("sale_completed_events", saleCompletedHandler.EventTypes()),
		zap.String("idempotency_backend", cfg.Event.IdempotencyBackend),
		zap.Duration("idempotency_ttl", cfg.Event.IdempotencyTTL),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	salesService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	salesHandler := handler.NewSalesHandler(salesService)
	healthHandler := handler.NewHealthHandler(db.Ping)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Token auth guards the API only when a secret is configured.
	// Production config validation refuses to start without one.
	if cfg.JWT.Secret != "" {
		jwtService := auth.NewJWTService(cfg.JWT)
		engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService: jwtService,
			SkipPaths:  []string{"/health", "/healthz"},
			Logger:     log,
		}))
		log.Info("JWT authentication enabled", zap.String("issuer", cfg.JWT.Issuer))
	} else {
		log.Warn("JWT authentication disabled: no secret configured")
	}

	engine.GET("/health", healthHandler.Health)
	engine.GET("/healthz", healthHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.NewCatalogRoutes(productHandler)).
		Register(router.NewInventoryRoutes(inventoryHandler)).
		Register(router.NewSalesRoutes(salesHandler))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newIdempotencyStore builds the store named by event.idempotency_backend.
// The in-memory store is per-process; Redis is required when more than one
// instance consumes the same event stream.
func newIdempotencyStore(cfg *config.Config, log *zap.Logger) (shared.IdempotencyStore, error) {
	switch cfg.Event.IdempotencyBackend {
	case "redis":
		store, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		log.Info("Redis idempotency store connected",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
		return store, nil
	default:
		return cache.NewInMemoryIdempotencyStore(), nil
	}
}
