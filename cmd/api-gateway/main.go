package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/cancha-club/cancha-api/api/swagger"
	"github.com/cancha-club/cancha-api/internal/handler"
	"github.com/cancha-club/cancha-api/internal/middleware"
	"github.com/cancha-club/cancha-api/internal/models"
	"github.com/cancha-club/cancha-api/internal/repository"
	"github.com/cancha-club/cancha-api/internal/service"
	"github.com/cancha-club/cancha-api/pkg/cache"
	"github.com/cancha-club/cancha-api/pkg/config"
	"github.com/cancha-club/cancha-api/pkg/database"
	"github.com/cancha-club/cancha-api/pkg/jobs"
	"github.com/cancha-club/cancha-api/pkg/logger"
	corsmiddleware "github.com/cancha-club/cancha-api/pkg/middleware/cors"
	reqidmiddleware "github.com/cancha-club/cancha-api/pkg/middleware/requestid"
)

// @title Cancha Club API
// @version 0.1.0
// @description Court availability and booking service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// the cache is an optimization; run uncached rather than refuse to boot
		logr.Sugar().Warnw("redis unavailable, availability cache disabled", "error", err)
		redisClient = nil
	}

	scheduleRepo := repository.NewScheduleRepository(db)
	courtRepo := repository.NewCourtRepository(db, scheduleRepo)
	reserveRepo := repository.NewReserveRepository(db)
	fixedRepo := repository.NewFixedReserveRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, logr)
	validate := validator.New()

	availabilitySvc := service.NewAvailabilityService(service.AvailabilityServiceParams{
		Schedules: scheduleRepo,
		Courts:    courtRepo,
		Reserves:  reserveRepo,
		Fixed:     fixedRepo,
		Cache:     cacheSvc,
		Metrics:   metricsSvc,
		Logger:    logr,
		Config: service.AvailabilityServiceConfig{
			CacheEnabled: cfg.Availability.CacheEnabled,
			CacheTTL:     cfg.Availability.CacheTTL,
		},
	})
	reserveSvc := service.NewReserveService(reserveRepo, scheduleRepo, fixedRepo, cacheSvc, validate, logr)
	materializerSvc := service.NewMaterializerService(fixedRepo, reserveRepo, cacheSvc, metricsSvc, logr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := jobs.NewQueue("materializer", materializerSvc.HandleJob, jobs.QueueConfig{
		Workers:    1,
		BufferSize: cfg.Materializer.QueueBuffer,
		MaxRetries: cfg.Materializer.MaxRetries,
		Logger:     logr,
	})
	queue.Start(ctx)
	defer queue.Stop()

	if cfg.Materializer.Enabled {
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(cfg.Materializer.Schedule, func() {
			materializerSvc.Run(ctx)
		}); err != nil {
			logr.Sugar().Fatalw("invalid materializer schedule", "schedule", cfg.Materializer.Schedule, "error", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		logr.Sugar().Infow("materializer scheduled", "cron", cfg.Materializer.Schedule)
	}

	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	reserveHandler := handler.NewReserveHandler(reserveSvc)
	materializerHandler := handler.NewMaterializerHandler(queue)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.OptionalJWT(cfg.JWT.Secret))

	api.GET("/availability", availabilityHandler.Day)
	api.GET("/availability/slot", availabilityHandler.Slot)
	api.GET("/reservations/day", availabilityHandler.Reservations)

	api.POST("/reserves", reserveHandler.Create)
	api.GET("/reserves", reserveHandler.List)
	api.GET("/reserves/:id", reserveHandler.Get)

	staff := api.Group("")
	staff.Use(middleware.JWT(cfg.JWT.Secret), middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin, models.RoleEmployee))
	staff.PATCH("/reserves/:id/status", reserveHandler.UpdateStatus)
	staff.DELETE("/reserves/:id", reserveHandler.Cancel)

	admin := api.Group("/admin")
	admin.Use(middleware.JWT(cfg.JWT.Secret), middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin))
	admin.POST("/materializer/run", materializerHandler.Run)
	admin.GET("/metrics", metricsHandler.Snapshot)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
