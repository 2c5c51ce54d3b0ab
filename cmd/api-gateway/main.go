package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/edu-priem/admissions-api/api/swagger"
	"github.com/edu-priem/admissions-api/internal/handler"
	"github.com/edu-priem/admissions-api/internal/middleware"
	"github.com/edu-priem/admissions-api/internal/models"
	"github.com/edu-priem/admissions-api/internal/repository"
	"github.com/edu-priem/admissions-api/internal/service"
	"github.com/edu-priem/admissions-api/pkg/cache"
	"github.com/edu-priem/admissions-api/pkg/config"
	"github.com/edu-priem/admissions-api/pkg/database"
	"github.com/edu-priem/admissions-api/pkg/logger"
	corsmiddleware "github.com/edu-priem/admissions-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edu-priem/admissions-api/pkg/middleware/requestid"
)

// @title Admissions API
// @version 1.0.0
// @description Admission-cycle management: applicant intake, competitive lists and passing scores
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

	db, err := database.Open(cfg.Storage)
	if err != nil {
		logr.Fatal("failed to open storage", zap.Error(err), zap.String("driver", cfg.Storage.Driver))
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		logr.Fatal("failed to migrate schema", zap.Error(err))
	}

	programRepo := repository.NewProgramRepository(db)
	if err := programRepo.Seed(ctx, models.DefaultPrograms()); err != nil {
		logr.Fatal("failed to seed program catalog", zap.Error(err))
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, passing-score cache disabled", zap.Error(err))
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	applicantRepo := repository.NewApplicantRepository(db)
	listRepo := repository.NewListRepository(db)

	metricsSvc := service.NewMetricsService()
	applicantSvc := service.NewApplicantService(applicantRepo, nil, logr)
	listSvc := service.NewListService(listRepo, programRepo, cacheRepo, logr)
	admissionSvc := service.NewAdmissionService(listRepo, programRepo, cacheRepo, cfg.Admission.CacheTTL, metricsSvc, logr)
	exportSvc := service.NewExportService(applicantSvc, listRepo, admissionSvc, logr)

	applicantHandler := handler.NewApplicantHandler(applicantSvc, metricsSvc)
	listHandler := handler.NewListHandler(listSvc, metricsSvc)
	admissionHandler := handler.NewAdmissionHandler(admissionSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		applicants := api.Group("/applicants")
		{
			applicants.GET("", applicantHandler.List)
			applicants.POST("", applicantHandler.Create)
			applicants.DELETE("", applicantHandler.Clear)
			applicants.POST("/bulk", applicantHandler.BulkCreate)
			applicants.POST("/import", applicantHandler.Import)
			applicants.GET("/stats", applicantHandler.Stats)
			applicants.PATCH("/:id", applicantHandler.Update)
			applicants.DELETE("/:id", applicantHandler.Delete)
		}

		lists := api.Group("/lists")
		{
			lists.GET("", listHandler.List)
			lists.DELETE("", listHandler.Clear)
			lists.POST("/load", listHandler.Load)
			lists.POST("/import", listHandler.Import)
		}
		api.GET("/programs", listHandler.Programs)

		admission := api.Group("/admission")
		{
			admission.GET("/passing-scores", admissionHandler.PassingScores)
			admission.GET("/ranked", admissionHandler.Ranked)
		}

		export := api.Group("/export")
		{
			export.GET("/applicants", exportHandler.Applicants)
			export.GET("/lists", exportHandler.Lists)
			export.GET("/passing-scores", exportHandler.PassingScores)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "driver", cfg.Storage.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
