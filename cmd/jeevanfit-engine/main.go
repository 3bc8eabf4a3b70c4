package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jeevanfit/jeevanfit-engine/internal/api"
	"github.com/jeevanfit/jeevanfit-engine/internal/cache"
	"github.com/jeevanfit/jeevanfit-engine/internal/config"
	"github.com/jeevanfit/jeevanfit-engine/internal/engine"
	"github.com/jeevanfit/jeevanfit-engine/internal/metrics"
	"github.com/jeevanfit/jeevanfit-engine/internal/services"
	"github.com/jeevanfit/jeevanfit-engine/internal/trends"
	"github.com/jeevanfit/jeevanfit-engine/internal/utils"
	"github.com/jeevanfit/jeevanfit-engine/internal/validation"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("path", configPath), slog.Any("error", err))
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)
	logger.Info("starting jeevanfit-engine", slog.String("address", cfg.Server.Address))

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Error("failed to register metrics", slog.Any("error", err))
		os.Exit(1)
	}

	tables, err := engine.LoadTables(cfg.Analysis.TablesPath)
	if err != nil {
		logger.Error("failed to load scoring tables", slog.String("path", cfg.Analysis.TablesPath), slog.Any("error", err))
		os.Exit(1)
	}

	ruleEngine, err := engine.NewRuleEngine(cfg.Analysis.RulesPath, logger)
	if err != nil {
		logger.Error("failed to load rule pack", slog.Any("error", err))
		os.Exit(1)
	}

	pipeline, err := engine.NewPipeline(logger, tables, ruleEngine)
	if err != nil {
		logger.Error("failed to build pipeline", slog.Any("error", err))
		os.Exit(1)
	}

	validator, err := validation.NewValidator()
	if err != nil {
		logger.Error("failed to build validator", slog.Any("error", err))
		os.Exit(1)
	}

	var cacheProvider cache.Provider = cache.NoopProvider{}
	if cfg.Cache.Enabled {
		cacheProvider = cache.NewMemoryProvider(cfg.Cache.MaxEntries)
		logger.Info("trend cache enabled", slog.Int("max_entries", cfg.Cache.MaxEntries), slog.Duration("ttl", cfg.Cache.TrendsTTL))
	}
	defer cacheProvider.Close()

	analyzer := trends.NewAnalyzer(tables.Trends, cfg.Analysis.Workers, logger)
	service := services.NewAssessmentService(logger, pipeline, analyzer, validator, cacheProvider, cfg.Cache.TrendsTTL)

	var limiter *api.RateLimiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = api.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	server, err := api.NewServer(cfg.Server, service, limiter)
	if err != nil {
		logger.Error("failed to create gRPC server", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metricsServer *http.Server
	if cfg.Server.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Server.MetricsAddress,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			logger.Info("metrics server listening", slog.String("address", cfg.Server.MetricsAddress))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server exited", slog.Any("error", err))
				stop()
			}
		}()
	}

	go func() {
		if serveErr := server.Start(); serveErr != nil {
			logger.Error("gRPC server exited", slog.Any("error", serveErr))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	server.Shutdown(shutdownCtx)

	if metricsServer != nil {
		metricsCtx, cancelMetrics := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(metricsCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server shutdown", slog.Any("error", err))
		}
		cancelMetrics()
	}

	logger.Info("jeevanfit-engine stopped", slog.Duration("p95", service.LatencyP95()))
}
