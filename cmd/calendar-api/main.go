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
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/eventflow-app/eventflow-api/api/swagger"
	"github.com/eventflow-app/eventflow-api/internal/handler"
	"github.com/eventflow-app/eventflow-api/internal/middleware"
	"github.com/eventflow-app/eventflow-api/internal/service"
	"github.com/eventflow-app/eventflow-api/internal/store"
	"github.com/eventflow-app/eventflow-api/pkg/blob"
	"github.com/eventflow-app/eventflow-api/pkg/cache"
	"github.com/eventflow-app/eventflow-api/pkg/config"
	"github.com/eventflow-app/eventflow-api/pkg/database"
	"github.com/eventflow-app/eventflow-api/pkg/logger"
	corsmiddleware "github.com/eventflow-app/eventflow-api/pkg/middleware/cors"
	reqidmiddleware "github.com/eventflow-app/eventflow-api/pkg/middleware/requestid"
)

// @title EventFlow Calendar API
// @version 1.0.0
// @description Calendar event management with recurrence expansion and filtered queries
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eventsBlob, usersBlob, err := newBlobStores(ctx, cfg)
	if err != nil {
		logr.Sugar().Fatalw("snapshot backend init failed", "backend", cfg.Blob.Backend, "error", err)
	}

	st := store.New(logr)
	store.Restore(ctx, st, eventsBlob, logr)

	metrics := service.NewMetricsService(func() float64 { return float64(st.Len()) })

	saver := store.NewSaver(eventsBlob, store.SaverConfig{
		Retries:    cfg.Jobs.SaveRetries,
		RetryDelay: cfg.Jobs.SaveDelay,
		Logger:     logr,
		Observe:    metrics.ObserveSnapshotSave,
	})
	saver.Start(ctx)
	st.OnPersist(saver.Enqueue)

	validate := validator.New()
	calendarSvc := service.NewCalendarService(st, validate, logr)
	if cfg.Calendar.SeedDemoEvents {
		if err := calendarSvc.SeedDemo(); err != nil {
			logr.Warn("demo seed failed", zap.Error(err))
		}
	}

	querySvc := service.NewQueryService(st, service.QueryConfig{
		HorizonMonths:  cfg.Calendar.HorizonMonths,
		MaxOccurrences: cfg.Calendar.MaxOccurrences,
		NormalizeTime:  cfg.Calendar.NormalizeTimeOrder,
	}, logr).WithMetrics(metrics.ObserveQuery)
	exportSvc := service.NewExportService(st, querySvc, logr)
	authSvc := service.NewAuthService(usersBlob, cfg.Auth.Secret, cfg.Auth.Expiration, validate, logr)

	router := newRouter(cfg, logr, metrics, calendarSvc, querySvc, exportSvc, authSvc)

	runner := cron.New()
	if cfg.Jobs.DigestCron != "" {
		if _, err := runner.AddFunc(cfg.Jobs.DigestCron, func() {
			today := querySvc.Today(context.Background())
			logr.Info("daily digest",
				zap.String("date", today.Date.String()),
				zap.Int("total", today.Total),
				zap.Int("past", today.Past),
				zap.Int("upcoming", today.Upcoming),
			)
		}); err != nil {
			logr.Warn("invalid digest schedule", zap.String("cron", cfg.Jobs.DigestCron), zap.Error(err))
		}
	}
	if cfg.Jobs.SnapshotCron != "" {
		if _, err := runner.AddFunc(cfg.Jobs.SnapshotCron, func() {
			if err := saver.SaveNow(context.Background(), st.Events()); err != nil {
				logr.Warn("scheduled snapshot failed", zap.Error(err))
			}
		}); err != nil {
			logr.Warn("invalid snapshot schedule", zap.String("cron", cfg.Jobs.SnapshotCron), zap.Error(err))
		}
	}
	runner.Start()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "blob_backend", cfg.Blob.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("server shutdown", zap.Error(err))
	}

	<-runner.Stop().Done()
	saver.Stop()
	if err := saver.SaveNow(shutdownCtx, st.Events()); err != nil {
		logr.Warn("final snapshot failed", zap.Error(err))
	}
	logr.Info("goodbye")
}

func newBlobStores(ctx context.Context, cfg *config.Config) (events, users blob.Store, err error) {
	usersKey := cfg.Blob.Key + "-users"

	switch cfg.Blob.Backend {
	case config.BlobBackendRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return blob.NewRedisStore(client, cfg.Blob.Key), blob.NewRedisStore(client, usersKey), nil

	case config.BlobBackendPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		eventsStore := blob.NewPostgresStore(db, cfg.Blob.Key)
		if err := eventsStore.Init(ctx); err != nil {
			return nil, nil, err
		}
		return eventsStore, blob.NewPostgresStore(db, usersKey), nil

	default:
		eventsStore, err := blob.NewFileStore(cfg.Blob.Dir, cfg.Blob.Key)
		if err != nil {
			return nil, nil, err
		}
		usersStore, err := blob.NewFileStore(cfg.Blob.Dir, usersKey)
		if err != nil {
			return nil, nil, err
		}
		return eventsStore, usersStore, nil
	}
}

func newRouter(
	cfg *config.Config,
	logr *zap.Logger,
	metrics *service.MetricsService,
	calendarSvc *service.CalendarService,
	querySvc *service.QueryService,
	exportSvc *service.ExportService,
	authSvc *service.AuthService,
) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	events := handler.NewEventHandler(calendarSvc)
	queries := handler.NewQueryHandler(querySvc)
	exports := handler.NewExportHandler(exportSvc)
	auth := handler.NewAuthHandler(authSvc)

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)
	api.GET("/auth/me", middleware.JWT(authSvc), auth.Me)

	protected := api.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.JWT(authSvc))
	}

	protected.GET("/events", events.List)
	protected.POST("/events", events.Create)
	protected.PUT("/events/filter", events.SetFilter)
	protected.GET("/events/palette", events.Palette)
	protected.GET("/events/:id", events.Get)
	protected.PUT("/events/:id", events.Update)
	protected.DELETE("/events/:id", events.Delete)

	protected.GET("/occurrences", queries.InRange)
	protected.GET("/occurrences/today", queries.Today)
	protected.GET("/occurrences/:date", queries.OnDate)

	protected.GET("/export/calendar.ics", exports.ICS)
	protected.GET("/export/events.csv", exports.CSV)
	protected.GET("/export/agenda.pdf", exports.AgendaPDF)

	return r
}
