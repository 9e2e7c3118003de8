package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorestaurant/internal/config"
	"gorestaurant/internal/database"
	"gorestaurant/internal/logging"
	"gorestaurant/internal/monitoring"
	"gorestaurant/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	logger, err := logging.NewConsole(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	// Initialize database
	db, err := database.Open(cfg.Server.Dialect, cfg.Server.DSN, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Server.SeedFile != "" {
		if err := seed(db, cfg.Server.SeedFile, logger); err != nil {
			return err
		}
	}

	// Initialize metrics
	monitor, err := monitoring.NewMonitor(prometheus.DefaultRegisterer, "server")
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	go startMetricsServer(cfg.Server.MetricsPort, logger)

	gin.SetMode(gin.ReleaseMode)
	api := server.New(db, logger, monitor)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info().Msg("Shutting down server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("API server shutdown error")
		}
	}()

	logger.Info().Int("port", cfg.Server.Port).Msg("Starting foods API")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("API server error: %w", err)
	}
	return nil
}

func seed(db *database.DB, path string, logger zerolog.Logger) error {
	plates, err := database.LoadSeed(path)
	if err != nil {
		return err
	}

	n, err := db.Seed(context.Background(), plates)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Info().Int("count", n).Str("file", path).Msg("Seeded food plates")
	}
	return nil
}

func startMetricsServer(port int, logger zerolog.Logger) {
	if port == 0 {
		return
	}

	metricsRouter := gin.New()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	logger.Info().Int("port", port).Msg("Starting metrics server")
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("Metrics server error")
	}
}
