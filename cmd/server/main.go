package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/xborder/finance-engine/docs"
	financeapp "github.com/xborder/finance-engine/internal/application/finance"
	"github.com/xborder/finance-engine/internal/domain/profit"
	"github.com/xborder/finance-engine/internal/domain/rates"
	"github.com/xborder/finance-engine/internal/infrastructure/config"
	"github.com/xborder/finance-engine/internal/infrastructure/logger"
	"github.com/xborder/finance-engine/internal/infrastructure/persistence"
	"github.com/xborder/finance-engine/internal/infrastructure/telemetry"
	"github.com/xborder/finance-engine/internal/interfaces/http/handler"
	"github.com/xborder/finance-engine/internal/interfaces/http/middleware"
	"github.com/xborder/finance-engine/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//	@title			Finance Engine API
//	@version		1.0
//	@description	Cross-border shipping cost and profit margin calculation service

//	@contact.name	API Support

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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
		_ = log.Sync()
	}()

	log.Info("Starting finance engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// OpenTelemetry: traces and the zap log bridge, both no-ops when disabled
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          logger.ParseLevel(cfg.Log.Level),
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore,
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
		)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
		if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()

	// Rate store connection with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to rate store", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing rate store", zap.Error(err))
		}
	}()

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        cfg.Database.Driver,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate rate store schema", zap.Error(err))
	}

	if cfg.Rates.SeedOnEmpty {
		seeded, err := persistence.SeedDefaultRates(db.DB)
		if err != nil {
			log.Fatal("Failed to seed default rates", zap.Error(err))
		}
		if seeded > 0 {
			log.Info("Seeded default rate card", zap.Int("tables", seeded))
		}
	}

	// Rate registry, warmed with the first version before serving
	registry := rates.NewRegistry(
		persistence.NewGormRateSource(db.DB),
		log,
		rates.WithReloadTimeout(cfg.Rates.ReloadTimeout),
	)
	if _, err := registry.Reload(context.Background()); err != nil {
		log.Warn("Initial rate load failed; service starts not ready", zap.Error(err))
	}

	// Application services
	profitCalc := profit.Calculator{
		Fees: profit.FeeSchedule{
			DefaultRate:   cfg.Fees.DefaultRate,
			PlatformRates: cfg.Fees.Platforms,
			CategoryRates: cfg.Fees.Categories,
		},
		Thresholds: profit.Thresholds{
			Thin:    cfg.Margin.ThinBelow,
			Healthy: cfg.Margin.HealthyUpTo,
		},
		Targets: optimizerTargets(cfg),
	}
	shippingService := financeapp.NewShippingService(registry, log, cfg.Margin.BatchParallel)
	profitService := financeapp.NewProfitService(registry, profitCalc, log, cfg.Margin.BatchParallel)
	rateService := financeapp.NewRateService(registry, log)

	// HTTP engine and middleware chain
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	// Routes
	systemHandler := handler.NewSystemHandler(rateService, db, cfg.App.Name)
	systemHandler.RegisterRoot(engine)

	// Swagger documentation endpoint
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewFinanceHandler(shippingService, profitService)).
		Register(handler.NewRateHandler(rateService)).
		Register(systemHandler).
		Setup()

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

	// Graceful shutdown
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

// optimizerTargets builds the price optimization tiers from configuration
func optimizerTargets(cfg *config.Config) []profit.Target {
	breakEven := decimal.Zero
	healthy := cfg.Margin.TargetHealthy
	strong := cfg.Margin.TargetStrong
	return []profit.Target{
		{Name: "break_even", ProfitAmount: &breakEven},
		{Name: "healthy_margin", MarginRate: &healthy},
		{Name: "strong_margin", MarginRate: &strong},
	}
}
