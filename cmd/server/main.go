// Package main is the CRM backend HTTP server.
//
//	@title			CRM Backend API
//	@version		1.0
//	@description	Business partner records for field sales: identity, relationship, financial estimation, analysis and acquisition.
//	@BasePath		/crm-api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	partnerapp "github.com/crm/backend/internal/application/partner"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/migration"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/infrastructure/telemetry"
	"github.com/crm/backend/internal/interfaces/http/handler"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting CRM Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("base_path", cfg.App.BasePath),
	)

	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		_ = mp.Shutdown(context.Background())
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
	)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if mp.IsEnabled() {
		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatal("Failed to get database handle", zap.Error(err))
		}
		poolMetrics, err := telemetry.RegisterPoolMetrics(mp.Meter("db.pool"), sqlDB)
		if err != nil {
			log.Fatal("Failed to register pool metrics", zap.Error(err))
		}
		defer func() {
			_ = poolMetrics.Unregister()
		}()
	}

	if cfg.Database.AutoMigrate {
		if err := migrate(db, cfg.Database.MigrationsPath, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// Missing indexes only slow queries down
	if err := persistence.EnsureIndexes(context.Background(), db.DB, log); err != nil {
		log.Warn("Failed to ensure partner indexes", zap.Error(err))
	}

	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	partnerService := partnerapp.NewPartnerService(partnerRepo)
	partnerHandler := handler.NewPartnerHandler(partnerService)
	healthHandler := handler.NewHealthHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	// Request ID first so every later middleware can log it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanAttributes())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(mp))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	r := router.NewRouter(engine, router.WithBasePath(cfg.App.BasePath))
	r.Register(router.PartnerRoutes(partnerHandler)).
		Register(router.HealthRoutes(healthHandler))
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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully", zap.Duration("shutdown_timeout", cfg.HTTP.ShutdownTimeout))
}

// migrate applies pending migrations on the server's own connection
func migrate(db *persistence.Database, path string, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, path, log)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	start := time.Now()
	if err := m.Up(); err != nil {
		return err
	}
	log.Info("Migrations applied", zap.Duration("elapsed", time.Since(start)))
	return nil
}
