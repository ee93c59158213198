package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/brightprep/studycal-api/api/swagger"
	"github.com/brightprep/studycal-api/internal/catalog"
	"github.com/brightprep/studycal-api/internal/handler"
	"github.com/brightprep/studycal-api/internal/middleware"
	"github.com/brightprep/studycal-api/internal/planner"
	"github.com/brightprep/studycal-api/internal/repository"
	"github.com/brightprep/studycal-api/internal/service"
	"github.com/brightprep/studycal-api/pkg/cache"
	"github.com/brightprep/studycal-api/pkg/config"
	"github.com/brightprep/studycal-api/pkg/database"
	"github.com/brightprep/studycal-api/pkg/export"
	"github.com/brightprep/studycal-api/pkg/jobs"
	"github.com/brightprep/studycal-api/pkg/logger"
	"github.com/brightprep/studycal-api/pkg/mailer"
	corsmiddleware "github.com/brightprep/studycal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/brightprep/studycal-api/pkg/middleware/requestid"
	"github.com/brightprep/studycal-api/pkg/storage"
)

// @title StudyCal API
// @version 1.0.0
// @description Personalized exam study program generation, checkout, and delivery
// @BasePath /api/v1
// @schemes http https

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	metrics := service.NewMetricsService()

	registry := catalog.NewRegistry()
	builder := planner.New(registry, nil, nil)

	programRepo := repository.NewProgramRepository(redisClient, cfg.Programs.StoreTTL, logr)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Programs.CatalogCacheTTL, logr, true)

	exportStorage, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare exports storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	var mail mailer.Mailer
	if cfg.Delivery.Enabled {
		mail = mailer.NewSendgridMailer(cfg.Delivery.SendgridAPIKey, cfg.Delivery.FromName, cfg.Delivery.FromEmail, logr)
	}

	deliverySvc := service.NewDeliveryService(
		programRepo,
		export.NewPDFExporter(),
		export.NewICSExporter(),
		exportStorage,
		signer,
		mail,
		metrics,
		logr,
		cfg.Delivery.PublicBaseURL,
	)

	var dispatcher service.DeliveryDispatcher
	if cfg.Delivery.Enabled {
		queue := jobs.NewQueue("delivery", deliverySvc.Process, jobs.QueueConfig{
			Workers:    cfg.Delivery.WorkerConcurrency,
			MaxRetries: cfg.Delivery.WorkerRetries,
			Logger:     logr,
		})
		queue.Start(ctx)
		defer queue.Stop()
		deliverySvc.SetQueue(queue)
		dispatcher = deliverySvc
	}

	programSvc := service.NewProgramService(programRepo, builder, registry, dispatcher, metrics, logr)

	go runExportCleanup(ctx, exportStorage, cfg.Exports.CleanupInterval, cfg.Exports.SignedURLTTL, logr)

	programHandler := handler.NewProgramHandler(programSvc, deliverySvc)
	catalogHandler := handler.NewCatalogHandler(programSvc, cacheSvc, cfg.Programs.CatalogCacheTTL)
	downloadHandler := handler.NewDownloadHandler(signer, exportStorage)
	metricsHandler := handler.NewMetricsHandler(metrics)

	var checkoutHandler *handler.CheckoutHandler
	if cfg.Checkout.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect postgres", "error", err)
		}
		defer db.Close() //nolint:errcheck

		orderRepo := repository.NewOrderRepository(db)
		gateway := service.NewHostedCheckoutGateway(cfg.Checkout.PaymentBaseURL)
		checkoutSvc := service.NewCheckoutService(orderRepo, gateway, programSvc, logr, service.CheckoutConfig{
			Currency:      cfg.Checkout.Currency,
			PriceCents:    cfg.Checkout.PriceCents,
			WebhookSecret: cfg.Checkout.WebhookSecret,
		})
		checkoutHandler = handler.NewCheckoutHandler(checkoutSvc)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/downloads/:token", downloadHandler.Download)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	if cfg.Auth.Enabled {
		verifier := middleware.NewTokenVerifier(cfg.Auth)
		api.Use(middleware.Auth(verifier))
	}

	api.GET("/catalogs", catalogHandler.List)
	api.GET("/catalogs/:examType", catalogHandler.Get)
	api.GET("/programs/:id", programHandler.Get)
	api.GET("/programs/:id/summary", programHandler.Summary)
	api.DELETE("/programs/:id", programHandler.Delete)
	api.GET("/system/metrics", metricsHandler.Snapshot)

	if checkoutHandler != nil {
		// Payment gate on: programs are created through checkout only.
		api.POST("/checkout/orders", checkoutHandler.CreateOrder)
		api.GET("/checkout/orders/:id", checkoutHandler.GetOrder)
		api.GET("/checkout/orders/:id/program", checkoutHandler.GetOrderProgram)
		api.POST("/checkout/webhook", checkoutHandler.Webhook)
	} else {
		api.POST("/programs", programHandler.Generate)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// runExportCleanup drops artifacts once their signed links can no longer be
// valid.
func runExportCleanup(ctx context.Context, store *storage.LocalStorage, interval, ttl time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := store.CleanupOlderThan(ttl)
			if err != nil {
				logr.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if len(deleted) > 0 {
				logr.Info("export cleanup removed artifacts", zap.Int("count", len(deleted)))
			}
		}
	}
}
