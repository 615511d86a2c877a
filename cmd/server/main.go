package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/labforge/ims/internal/config"
	"github.com/labforge/ims/internal/ims/entity"
	"github.com/labforge/ims/internal/ims/handler"
	"github.com/labforge/ims/internal/ims/repository"
	"github.com/labforge/ims/internal/ims/service"
	"github.com/labforge/ims/internal/middleware"
)

// Set at build time via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to init database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.CatalogueCategory{},
		&entity.CatalogueItem{},
		&entity.Item{},
		&entity.System{},
		&entity.Manufacturer{},
		&entity.Unit{},
		&entity.UsageStatus{},
	); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}
	zapLogger.Info("Database migration completed")

	var rdb *redis.Client
	if cfg.Redis.Addr() != "" {
		rdb = initRedis(cfg.Redis)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, zapLogger)
	handlers := handler.NewHandlers(services, db, rdb)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.RateLimit.Enabled && rdb != nil {
		router.Use(middleware.RateLimit(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window, zapLogger))
	}

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port), zap.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health", h.Health.Check)

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/v1")
	if cfg.JWT.Enabled {
		v1.Use(middleware.JWTAuth(cfg.JWT.Secret))
	}
	{
		categories := v1.Group("/catalogue-categories")
		{
			categories.POST("", h.CatalogueCategory.Create)
			categories.GET("", h.CatalogueCategory.List)
			categories.GET("/:id", h.CatalogueCategory.Get)
			categories.GET("/:id/breadcrumbs", h.CatalogueCategory.GetBreadcrumbs)
			categories.PATCH("/:id", h.CatalogueCategory.Update)
			categories.DELETE("/:id", h.CatalogueCategory.Delete)
			categories.POST("/:id/properties", h.CatalogueCategory.CreateProperty)
			categories.PATCH("/:id/properties/:propertyId", h.CatalogueCategory.UpdateProperty)
		}

		catalogueItems := v1.Group("/catalogue-items")
		{
			catalogueItems.POST("", h.CatalogueItem.Create)
			catalogueItems.GET("", h.CatalogueItem.List)
			catalogueItems.GET("/export", h.CatalogueItem.Export)
			catalogueItems.GET("/:id", h.CatalogueItem.Get)
			catalogueItems.PATCH("/:id", h.CatalogueItem.Update)
			catalogueItems.DELETE("/:id", h.CatalogueItem.Delete)
		}

		items := v1.Group("/items")
		{
			items.POST("", h.Item.Create)
			items.GET("", h.Item.List)
			items.GET("/:id", h.Item.Get)
			items.PATCH("/:id", h.Item.Update)
			items.DELETE("/:id", h.Item.Delete)
		}

		systems := v1.Group("/systems")
		{
			systems.POST("", h.System.Create)
			systems.GET("", h.System.List)
			systems.GET("/:id", h.System.Get)
			systems.GET("/:id/breadcrumbs", h.System.GetBreadcrumbs)
			systems.PATCH("/:id", h.System.Update)
			systems.DELETE("/:id", h.System.Delete)
		}

		manufacturers := v1.Group("/manufacturers")
		{
			manufacturers.POST("", h.Manufacturer.Create)
			manufacturers.GET("", h.Manufacturer.List)
			manufacturers.GET("/:id", h.Manufacturer.Get)
			manufacturers.PATCH("/:id", h.Manufacturer.Update)
			manufacturers.DELETE("/:id", h.Manufacturer.Delete)
		}

		units := v1.Group("/units")
		{
			units.POST("", h.Unit.Create)
			units.GET("", h.Unit.List)
			units.GET("/:id", h.Unit.Get)
			units.DELETE("/:id", h.Unit.Delete)
		}

		usageStatuses := v1.Group("/usage-statuses")
		{
			usageStatuses.POST("", h.UsageStatus.Create)
			usageStatuses.GET("", h.UsageStatus.List)
			usageStatuses.GET("/:id", h.UsageStatus.Get)
			usageStatuses.DELETE("/:id", h.UsageStatus.Delete)
		}
	}
}
