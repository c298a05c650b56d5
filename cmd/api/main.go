package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/ristorapos/backoffice-backend/api/routes"
	"github.com/ristorapos/backoffice-backend/internal/orderlines"
	"github.com/ristorapos/backoffice-backend/internal/reports"
	"github.com/ristorapos/backoffice-backend/internal/vat"
	"github.com/ristorapos/backoffice-backend/pkg/config"
	"github.com/ristorapos/backoffice-backend/pkg/db"
	"github.com/ristorapos/backoffice-backend/pkg/logger"
	"github.com/ristorapos/backoffice-backend/pkg/metrics"
	"github.com/ristorapos/backoffice-backend/pkg/migrate"
	"github.com/ristorapos/backoffice-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(logg, "database", err)

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	requireResource(logg, "redis", err)

	vatService, err := vat.NewService(vat.NewRepository(dbClient.DB()), redisClient, cfg.Report.VATRateCacheTTL, logg)
	requireResource(logg, "vat service", err)

	reportMetrics := metrics.NewReportMetrics(prometheus.DefaultRegisterer)

	reportsService, err := reports.NewService(
		orderlines.NewRepository(dbClient.DB()),
		vatService,
		reportMetrics,
		logg,
		cfg.Report.MaxRangeDays,
	)
	requireResource(logg, "reports service", err)

	router := routes.NewRouter(routes.Dependencies{
		Config:         cfg,
		Logger:         logg,
		DB:             dbClient,
		Redis:          redisClient,
		ReportsService: reportsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var closeErrs error
	if err := server.Shutdown(shutdownCtx); err != nil {
		closeErrs = multierr.Append(closeErrs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := redisClient.Close(); err != nil {
		closeErrs = multierr.Append(closeErrs, fmt.Errorf("redis close: %w", err))
	}
	if err := dbClient.Close(); err != nil {
		closeErrs = multierr.Append(closeErrs, fmt.Errorf("database close: %w", err))
	}
	if closeErrs != nil {
		logg.Error(ctx, "shutdown completed with errors", closeErrs)
		os.Exit(1)
	}

	logg.Info(ctx, "api server stopped")
}

func requireResource(logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
