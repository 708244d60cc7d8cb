package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/dukerupert/aerotax/internal"
	"github.com/dukerupert/aerotax/internal/engine"
	"github.com/dukerupert/aerotax/internal/handler"
	"github.com/dukerupert/aerotax/internal/router"
	"github.com/dukerupert/aerotax/internal/services"
	"github.com/dukerupert/aerotax/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Load reference data
	logger.Info("Loading reference data...", "path", cfg.ReferenceDataPath)
	static, err := services.LoadStatic(cfg.ReferenceDataPath)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}
	logger.Info("Reference data loaded")

	// Initialize Prometheus metrics
	httpMetrics := router.NewMetrics(cfg.MetricsNamespace)
	engineMetrics := telemetry.NewEngineMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)

	// Initialize the evaluation engine
	eng := engine.New(static.Bundle(), logger, engineMetrics)
	evaluateHandler := handler.NewEvaluateHandler(eng, logger)

	r := router.New(
		router.Recovery(logger),
		router.RequestID,
		httpMetrics.Middleware,
		router.Logger(logger),
	)

	// Metrics endpoint (should be protected in production via firewall)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		httpMetrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", handler.Health)

	// Evaluation endpoint
	r.Post("/v1/evaluate", evaluateHandler.Evaluate)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
