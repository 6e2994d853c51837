// Command indexer runs the realtime/historical EVM indexer: for every
// chain configured in config.toml it dials an RPC provider, backfills from
// the persisted cursor (or the configured start block) to the current
// finalized head, then polls for new blocks and reorgs indefinitely,
// dispatching matched events to the registered handlers and publishing
// checkpoint/reorg events downstream over NATS JetStream.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/0xkanth/evmindexer/internal/config"
	"github.com/0xkanth/evmindexer/internal/eventbus"
	"github.com/0xkanth/evmindexer/internal/progress"
	"github.com/0xkanth/evmindexer/internal/registry"
	"github.com/0xkanth/evmindexer/internal/runtime"
	"github.com/0xkanth/evmindexer/internal/store"
	"github.com/0xkanth/evmindexer/internal/syncstore"
	"github.com/0xkanth/evmindexer/internal/telemetry"
)

const serviceName = "evmindexer"

func main() {
	logger := config.NewLogger(serviceName)
	logger.Info().Msg("starting evmindexer")

	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(logger, configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	config.SetLogLevel(logger, cfg.LogLevel)

	logger.Info().
		Int("chains", len(cfg.Chains)).
		Str("ordering", cfg.Ordering).
		Msg("loaded configuration")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := prometheus.NewRegistry()
	metrics := telemetry.New(reg)

	syncStore, err := syncstore.Open(cfg.SyncStore.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open sync store")
	}
	defer syncStore.Close()

	pgStore, err := store.Open(ctx, cfg.Database.DSN, *logger, metrics)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open indexing store")
	}
	defer pgStore.Close()

	bus, err := eventbus.New(ctx, eventbus.Config{
		URL:           cfg.EventBus.URL,
		SubjectPrefix: cfg.EventBus.Stream,
	}, *logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to event bus")
	}
	defer bus.Close()

	handlerRegistry := registry.New()
	registerHandlers(handlerRegistry)

	var fatalOnce sync.Once
	var fatalErr *progress.FatalError
	onFatalError := func(err *progress.FatalError) {
		fatalOnce.Do(func() {
			fatalErr = err
			logger.Error().Err(err).Msg("fatal handler error, shutting down")
			cancel()
		})
	}

	sourceRoot, _ := os.Getwd()
	rt := runtime.New(runtime.Config{
		Logger:       *logger,
		Metrics:      metrics,
		Registry:     handlerRegistry,
		SourceRoot:   sourceRoot,
		OnFatalError: onFatalError,
	})

	metricsAddr := cfg.Telemetry.ListenAddr
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}
	metricsServer := &http.Server{Addr: metricsAddr, Handler: telemetry.Handler(reg)}
	go func() {
		logger.Info().Str("address", metricsAddr).Msg("starting metrics server")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()

	healthAddr := cfg.Telemetry.HealthAddr
	if healthAddr == "" {
		healthAddr = ":9091"
	}
	healthServer := &http.Server{Addr: healthAddr, Handler: http.HandlerFunc(healthCheckHandler(bus))}
	go func() {
		logger.Info().Str("address", healthAddr).Msg("starting health check server")
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("health check server error")
		}
	}()

	var wg sync.WaitGroup
	for _, chainCfg := range cfg.Chains {
		chainCfg := chainCfg
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := run(ctx, runnerConfig{
				chainCfg:  chainCfg,
				logger:    *logger,
				metrics:   metrics,
				pgStore:   pgStore,
				syncStore: syncStore,
				bus:       bus,
				rt:        rt,
			})
			if err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Uint64("chain_id", chainCfg.ChainID).Msg("chain runner exited")
				cancel()
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	case <-ctx.Done():
	}

	wg.Wait()

	logger.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("metrics server shutdown error")
	}
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("health server shutdown error")
	}

	logger.Info().Msg("shutdown complete")

	if fatalErr != nil {
		os.Exit(1)
	}
}

func healthCheckHandler(bus *eventbus.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !bus.Healthy() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("unhealthy: event bus disconnected\n"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy\n"))
	}
}
