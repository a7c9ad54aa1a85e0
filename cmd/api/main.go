package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/procureflow-backend/api/routes"
	"github.com/angelmondragon/procureflow-backend/internal/awards"
	"github.com/angelmondragon/procureflow-backend/internal/drafts"
	"github.com/angelmondragon/procureflow-backend/internal/purchaseorders"
	"github.com/angelmondragon/procureflow-backend/internal/seed"
	"github.com/angelmondragon/procureflow-backend/pkg/config"
	"github.com/angelmondragon/procureflow-backend/pkg/logger"
	"github.com/angelmondragon/procureflow-backend/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

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
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		registry       *prometheus.Registry
		metricsHandler http.Handler
	)
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}
	var m *metrics.ProcurementMetrics
	if registry != nil {
		m = metrics.NewProcurementMetrics(registry)
	}

	dataset, err := seed.Load()
	if err != nil {
		logg.Error(ctx, "failed to load seed data", err)
		os.Exit(1)
	}

	poStore, err := purchaseorders.NewStore(dataset.Directory(), dataset.OrderItems, dataset.PurchaseOrders,
		purchaseorders.WithLogger(logg),
		purchaseorders.WithMetrics(m),
	)
	if err != nil {
		logg.Error(ctx, "failed to create purchase order store", err)
		os.Exit(1)
	}

	awardStore := awards.NewStore(dataset.SupplierAwards,
		awards.WithLogger(logg),
		awards.WithMetrics(m),
		awards.WithOutcomeRecorder(poStore),
	)

	backend, err := drafts.Open(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open draft backend", err)
		os.Exit(1)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logg.Error(context.Background(), "error closing draft backend", err)
		}
	}()

	draftService, err := drafts.NewService(backend.Store, cfg.Drafts.TTL, logg, m)
	if err != nil {
		logg.Error(ctx, "failed to create draft service", err)
		os.Exit(1)
	}

	wizard, err := awards.NewService(awardStore, draftService, logg)
	if err != nil {
		logg.Error(ctx, "failed to create award wizard", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":           cfg.App.Env,
		"addr":          addr,
		"draft_backend": cfg.Drafts.Backend,
		"metrics":       cfg.Metrics.Enabled,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, poStore, awardStore, wizard, draftService, metricsHandler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(logCtx, "api server shutdown failed", err)
		}
	}
}
