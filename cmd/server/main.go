package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"healthmon/internal/config"
	"healthmon/internal/email/noop"
	"healthmon/internal/email/ses"
	"healthmon/internal/handler"
	"healthmon/internal/logger"
	"healthmon/internal/notify"
	"healthmon/internal/port"
	"healthmon/internal/repository/cached"
	"healthmon/internal/repository/memory"
	"healthmon/internal/repository/postgres"
	"healthmon/internal/risk"
	"healthmon/internal/router"
	"healthmon/internal/service"
	redisstore "healthmon/internal/storage/redis"
	s3storage "healthmon/internal/storage/s3"
)

// @title           Healthmon API
// @version         1.0
// @description     Community health monitoring: symptom and water quality intake, alerts, village risk map and role dashboards.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format, "healthmon")
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]handler.Check{}

	// Initialize repositories
	repos, db, err := openRepositories(cfg, zlog)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		checks["database"] = db.PingContext
	}
	repos.Villages = cached.NewVillageRepo(repos.Villages, cfg.Cache)

	// Initialize session store
	var store port.SessionStore
	switch cfg.Session.Store {
	case "redis":
		client := redisstore.NewClient(cfg.Redis)
		defer func() { _ = client.Close() }()
		if err := redisstore.Ping(ctx, client); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		checks["redis"] = func(ctx context.Context) error { return redisstore.Ping(ctx, client) }
		store = redisstore.NewSessionStore(client, cfg.Session.TTL)
	case "memory", "":
		store = memory.NewSessionStore()
	default:
		return fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}

	// Initialize email and export storage
	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(ctx, cfg.Email)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		sender = noop.NewNoopSender(zlog)
	}

	var objects port.ObjectStorage
	if cfg.Export.ArchiveEnabled {
		objects, err = s3storage.NewS3Client(ctx, cfg.Export)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	classifier, err := risk.New(cfg.Risk)
	if err != nil {
		return fmt.Errorf("failed to build risk classifier: %w", err)
	}

	hub := notify.NewHub(zlog, cfg.CORS.AllowedOrigins, repos.Villages)
	go hub.Run(ctx)

	// Initialize services
	authSvc := service.NewAuthService(repos.Users, store, cfg.Session.Key, cfg.JWT, zlog)
	intakeSvc := service.NewIntakeService(repos, hub, sender, cfg.Intake, zlog)
	alertSvc := service.NewAlertService(repos, hub, zlog)
	dashboardSvc := service.NewDashboardService(repos)
	exportSvc := service.NewExportService(repos, objects, cfg.Export, zlog)
	riskMapSvc := service.NewRiskMapService(repos, classifier)

	// Initialize handlers
	h := router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		Report:    handler.NewReportHandler(intakeSvc),
		Village:   handler.NewVillageHandler(riskMapSvc),
		Alert:     handler.NewAlertHandler(alertSvc, hub),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Export:    handler.NewExportHandler(exportSvc),
		I18n:      handler.NewI18nHandler(),
		Health:    handler.NewHealthHandler(checks),
	}

	r := router.Setup(cfg, authSvc, h, zlog)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("storage", cfg.Storage.Driver),
			zap.String("session_store", cfg.Session.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// openRepositories builds the record stores for the configured driver. The
// returned db is nil for the memory driver.
func openRepositories(cfg *config.Config, zlog *zap.Logger) (service.Repositories, *sqlx.DB, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return service.Repositories{}, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return service.Repositories{
			Users:         postgres.NewUserRepo(db),
			Villages:      postgres.NewVillageRepo(db),
			HealthReports: postgres.NewHealthReportRepo(db),
			WaterReports:  postgres.NewWaterReportRepo(db),
			Alerts:        postgres.NewAlertRepo(db),
		}, db, nil
	case "memory", "":
		mem := memory.NewEmpty()
		if cfg.Seed.DemoData {
			seeded, err := memory.NewSeeded()
			if err != nil {
				return service.Repositories{}, nil, fmt.Errorf("failed to seed demo data: %w", err)
			}
			mem = seeded
			zlog.Info("loaded demo data into memory store")
		}
		return service.Repositories{
			Users:         mem.Users,
			Villages:      mem.Villages,
			HealthReports: mem.HealthReport,
			WaterReports:  mem.WaterReport,
			Alerts:        mem.Alerts,
		}, nil, nil
	default:
		return service.Repositories{}, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
