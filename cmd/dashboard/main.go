package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"gorestaurant/internal/api"
	"gorestaurant/internal/config"
	"gorestaurant/internal/dashboard"
	"gorestaurant/internal/logging"
	"gorestaurant/internal/monitoring"
	"gorestaurant/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	apiURL     = flag.String("api", "", "Base URL of the foods API (overrides config)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}

	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger, err := logging.New(cfg.LogLevel, logFile)
	if err != nil {
		fmt.Printf("Error configuring logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("dashboard exited")
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := prometheus.NewRegistry()
	monitor, err := monitoring.NewMonitor(reg, "client")
	if err != nil {
		return err
	}
	if cfg.MetricsPort != 0 {
		go serveMetrics(cfg.MetricsPort, reg, logger)
	}

	client := api.NewClient(cfg.APIURL, api.WithTimeout(cfg.RequestTimeout), api.WithMonitor(monitor))
	if err := client.CheckHealth(ctx); err != nil {
		logger.Warn().Err(err).Str("api_url", cfg.APIURL).Msg("foods API health check failed")
	}

	ctrl := dashboard.NewController(api.NewFoodsService(client), logger)
	logger.Info().Str("api_url", cfg.APIURL).Msg("starting dashboard")

	p := tea.NewProgram(tui.New(ctx, ctrl), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// serveMetrics exposes the client request metrics for scraping
func serveMetrics(port int, reg *prometheus.Registry, logger zerolog.Logger) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), router); err != nil {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
