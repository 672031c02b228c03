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

	"github.com/Dan9191/gps-gateway/internal/config"
	"github.com/Dan9191/gps-gateway/internal/handler"
	"github.com/Dan9191/gps-gateway/internal/integrations/gps"
	"github.com/Dan9191/gps-gateway/internal/metrics"
	"github.com/Dan9191/gps-gateway/internal/middleware"
	"github.com/Dan9191/gps-gateway/internal/probe"
	"github.com/Dan9191/gps-gateway/internal/service"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.GPSInsecureSkipVerify {
		logger.Warn("TLS certificate verification is disabled for the GPS backend")
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	// Initialize layers
	gpsClient := gps.NewClient(cfg, logger, m)
	svc := service.NewService(gpsClient, logger)
	prober := probe.NewProber(gpsClient, cfg.GPSTimeout, logger, m)
	h := handler.NewHandler(svc, prober, logger)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger, m))
	h.AppendRoutes(r, middleware.AuthMiddleware(cfg))
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	if err := prober.Start(cfg.GPSProbeSchedule); err != nil {
		logger.Fatalf("Failed to start backend probe: %v", err)
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.GPSTimeout + 5*time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	prober.Stop()
	logger.Info("Server stopped")
}
