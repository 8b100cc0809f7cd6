package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/rfp-api/internal/application/service"
	"github.com/sangkips/rfp-api/internal/config"
	"github.com/sangkips/rfp-api/internal/infrastructure/authz"
	"github.com/sangkips/rfp-api/internal/infrastructure/database"
	"github.com/sangkips/rfp-api/internal/infrastructure/metrics"
	"github.com/sangkips/rfp-api/internal/infrastructure/repository"
	"github.com/sangkips/rfp-api/internal/presentation/http/handler"
	"github.com/sangkips/rfp-api/internal/presentation/http/middleware"
	"github.com/sangkips/rfp-api/internal/presentation/http/routes"
	"github.com/sangkips/rfp-api/pkg/logger"
	"github.com/sangkips/rfp-api/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.Logger.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	authorizer, err := authz.NewAuthorizer(zlog)
	if err != nil {
		zlog.Fatal("failed to build authorizer", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.JWT.Issuer)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	pipelineMetrics := metrics.New(registry)

	// Initialize repositories
	uow := repository.NewUnitOfWork(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	clock := service.SystemClock()
	quotationSettings := service.DefaultQuotationSettings()
	quotationSettings.GSTPercentage = decimal.NewFromFloat(cfg.RFP.GSTPercentage)
	if cfg.RFP.QuotationValidityDays > 0 {
		quotationSettings.ValidityDays = cfg.RFP.QuotationValidityDays
	}

	decisionService := service.NewPricingDecisionService(uow, clock, zlog)
	rfpService := service.NewRfpService(
		uow,
		decisionService,
		service.NewQuotationGenerator(quotationSettings, zlog),
		service.NewWorkOrderEnsurer(zlog),
		clock,
		pipelineMetrics,
		zlog,
	)

	handlers := &routes.Handlers{
		Rfp:             handler.NewRfpHandler(rfpService, service.NewAuditService(uow)),
		PricingDecision: handler.NewPricingDecisionHandler(decisionService),
		Document:        handler.NewDocumentHandler(service.NewDocumentService(uow)),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rateLimiter := routes.NewRateLimiter(cfg.RateLimit)
	go rateLimiter.Run(5*time.Minute, ctx.Done())
	go middleware.PurgeExpiredKeys(ctx, idempotencyRepo, time.Hour, zlog.Named("idempotency"))

	deps := &routes.Deps{
		JWTManager:      jwtManager,
		Actors:          authorizer,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Log:             zlog,
	}
	if cfg.Metrics.Enabled {
		deps.MetricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	}
	router := routes.Setup(handlers, deps)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("starting server", zap.String("service", cfg.App.Name), zap.String("port", port), zap.String("env", cfg.App.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
