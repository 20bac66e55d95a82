package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myscraper/adapters/filestore"
	"myscraper/adapters/memcache"
	"myscraper/adapters/metrics"
	"myscraper/adapters/myredis"
	"myscraper/adapters/prometheus"
	"myscraper/domain"
	"myscraper/handlers"
	"myscraper/interfaces"
	"myscraper/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	promclient "github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting MyScraper service")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger = level.NewFilter(logger, config.LogLevel)
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"prometheus", config.Prometheus.BaseURL(),
		"hosts_file", config.HostsFile,
		"sleep_time", config.SleepTime,
		"redis_addr", config.Redis.Addr,
		"service_port_http", config.HTTPPort,
	)

	timeProvider := service.NewTimeProvider(func() time.Time { return time.Now().UTC() })

	var cache interfaces.Cache[domain.Snapshot]
	if config.Redis.Enabled() {
		redisClient, err := config.Redis.NewClient()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Connected to Redis")

		marshal := func(s domain.Snapshot) ([]byte, error) { return json.Marshal(s) }
		unmarshal := func(b []byte) (domain.Snapshot, error) {
			var s domain.Snapshot
			err := json.Unmarshal(b, &s)
			return s, err
		}
		cache = myredis.NewCache[domain.Snapshot](redisClient, "snapshot", marshal, unmarshal)
	} else {
		cache = memcache.NewCache[domain.Snapshot](timeProvider)
	}

	registry := promclient.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Create Scraper
	var scheduler *service.Scheduler
	{
		source := prometheus.NewClient(config.Prometheus.BaseURL(), &http.Client{Timeout: 10 * time.Second})
		publishers := []interfaces.SnapshotPublisher{
			filestore.NewSnapshotFile(config.HostsFile),
			service.NewCachePublisher(cache, config.SnapshotTTLMs),
			collector,
		}
		scraper := service.NewScraper(source, service.NewCatalogBuilder(logger), config.Queries, publishers, logger)
		scheduler = service.NewScheduler(func(ctx context.Context) error {
			start := timeProvider.Now()
			_, err := scraper.Scrape(ctx)
			end := timeProvider.Now()
			collector.ObserveCycle(err, end.Sub(start), end)
			return err
		}, config.SleepTime, logger)
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	if config.HTTPPort != 0 {
		e = echo.New()
		e.HideBanner = true
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterHandlers(e, handlers.NewHTTPServer(cache, logger))
		handlers.RegisterMetricsHandler(e, registry)

		go func() {
			addr := fmt.Sprintf(":%d", config.HTTPPort)
			level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
			if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
				level.Error(logger).Log("msg", "HTTP server error", "err", err)
			}
		}()
	}

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = scheduler.Run(ctx)
	level.Info(logger).Log("msg", "Shutting down...")

	if e != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
		}
	}

	level.Info(logger).Log("msg", "Scraper stopped")
}
