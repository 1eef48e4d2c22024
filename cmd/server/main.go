package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/fairsplit/internal/auth"
	"github.com/mmynk/fairsplit/internal/config"
	"github.com/mmynk/fairsplit/internal/httpapi"
	"github.com/mmynk/fairsplit/internal/metrics"
	"github.com/mmynk/fairsplit/internal/middleware"
	"github.com/mmynk/fairsplit/internal/money"
	"github.com/mmynk/fairsplit/internal/service"
	"github.com/mmynk/fairsplit/internal/storage/sqlite"
	"github.com/mmynk/fairsplit/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	currency, ok := money.LookupCurrency(cfg.DefaultCurrency)
	if !ok {
		slog.Warn("Unknown DEFAULT_CURRENCY, using fallback", "currency", cfg.DefaultCurrency, "fallback", money.DefaultCurrencyCode)
		currency = money.DefaultCurrency()
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	// Register Connect service
	billSvc := service.NewBillService(store, jwtManager, auth.NewPasscodeAuthenticator(0),
		service.WithMetrics(m),
		service.WithDefaultCurrency(currency),
	)
	billPath, billHandler := service.NewBillServiceHandler(billSvc, connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.LoggingInterceptor(),
		middleware.RequireBillToken(jwtManager),
	))

	var staticDir string
	if cfg.StaticPath != "" {
		if staticDir, err = filepath.Abs(cfg.StaticPath); err != nil {
			slog.Error("Failed to resolve static path", "error", err)
			os.Exit(1)
		}
		slog.Info("Serving static files", "path", staticDir)
	}

	router := httpapi.NewRouter(httpapi.RouterConfig{
		RPCPath:    billPath,
		RPCHandler: billHandler,
		Export:     httpapi.NewExportHandler(store, jwtManager),
		Gatherer:   reg,
		StaticDir:  staticDir,
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting", "address", cfg.Addr, "default_currency", currency.Code)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
