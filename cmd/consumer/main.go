// Command consumer is the reference downstream subscriber to the indexer's
// eventbus: it durably consumes the checkpoint/reorg/finalize stream
// internal/eventbus publishes and maintains a per-chain sync_progress table
// in Postgres, the minimal "how far has chain X gotten" view a query layer
// or another service would otherwise have to reconstruct by polling
// cmd/indexer directly.
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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/0xkanth/evmindexer/internal/checkpoint"
	"github.com/0xkanth/evmindexer/internal/config"
	"github.com/0xkanth/evmindexer/internal/eventbus"
)

var (
	eventsConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "evmindexer_consumer_events_consumed_total",
		Help: "Total number of eventbus events consumed",
	}, []string{"type", "chain"})

	consumeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "evmindexer_consumer_errors_total",
		Help: "Total number of consume errors",
	}, []string{"error_type"})

	processingLag = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "evmindexer_consumer_lag_seconds",
		Help: "Time between a checkpoint's block timestamp and when it was consumed",
	}, []string{"chain"})
)

const serviceName = "evmindexer-consumer"

func main() {
	logger := config.NewLogger(serviceName)
	logger.Info().Msg("starting evmindexer consumer")

	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.Load(logger, configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	config.SetLogLevel(logger, cfg.LogLevel)

	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping database")
	}

	if err := ensureProgressTable(context.Background(), pool); err != nil {
		logger.Fatal().Err(err).Msg("failed to create sync_progress table")
	}

	nc, err := nats.Connect(cfg.EventBus.URL, nats.Name(serviceName))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to nats")
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create jetstream context")
	}

	consumer, err := js.CreateOrUpdateConsumer(context.Background(), "EVMINDEXER", jetstream.ConsumerConfig{
		Name:          "sync-progress",
		Durable:       "sync-progress",
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    3,
		AckWait:       30 * time.Second,
		FilterSubject: cfg.EventBus.Stream + ".>",
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create consumer")
	}

	metricsAddr := cfg.Telemetry.ListenAddr
	if metricsAddr == "" {
		metricsAddr = ":9190"
	}
	metricsServer := &http.Server{Addr: metricsAddr, Handler: promhttp.Handler()}
	go func() {
		logger.Info().Str("address", metricsAddr).Msg("starting metrics server")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consCtx, err := consumer.Consume(func(msg jetstream.Msg) {
		if err := processMessage(ctx, pool, msg, *logger); err != nil {
			consumeErrors.WithLabelValues("process_message").Inc()
			logger.Error().Err(err).Str("subject", msg.Subject()).Msg("failed to process message")
			msg.Nak()
			return
		}
		msg.Ack()
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start consuming")
	}
	defer consCtx.Stop()

	logger.Info().Msg("consumer started, waiting for messages")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("metrics server shutdown error")
	}
	logger.Info().Msg("shutdown complete")
}

// ensureProgressTable creates the minimal table this consumer maintains:
// one row per chain, overwritten on every checkpoint event. It intentionally
// does not touch the indexing store's own schema (internal/store owns
// that); this is a separate, narrower table a downstream reader can poll
// without depending on the indexing store's versioned-row internals.
func ensureProgressTable(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sync_progress (
			chain_id         BIGINT PRIMARY KEY,
			checkpoint       TEXT NOT NULL,
			block_number     BIGINT NOT NULL,
			block_timestamp  BIGINT NOT NULL,
			is_reorg         BOOLEAN NOT NULL DEFAULT false,
			reorg_from       BIGINT,
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// processMessage decodes one eventbus.Event and upserts its chain's row in
// sync_progress. Reorg events are recorded (is_reorg/reorg_from) but the
// row's block_number/checkpoint still tracks the latest seen, since a
// subsequent checkpoint event for the replayed range supersedes it.
func processMessage(ctx context.Context, pool *pgxpool.Pool, msg jetstream.Msg, logger zerolog.Logger) error {
	var ev eventbus.Event
	if err := json.Unmarshal(msg.Data(), &ev); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	eventsConsumed.WithLabelValues(string(ev.Type), chainLabel(ev.ChainID)).Inc()

	var blockNumber, blockTimestamp uint64
	if ev.Checkpoint != "" {
		parts, err := checkpoint.Decode(checkpoint.Checkpoint(ev.Checkpoint))
		if err != nil {
			return fmt.Errorf("decode checkpoint: %w", err)
		}
		blockNumber = parts.BlockNumber
		blockTimestamp = parts.BlockTimestamp
		processingLag.WithLabelValues(chainLabel(ev.ChainID)).Set(time.Since(time.Unix(int64(blockTimestamp), 0)).Seconds())
	}

	logger.Debug().
		Str("type", string(ev.Type)).
		Uint64("chain_id", ev.ChainID).
		Uint64("block", blockNumber).
		Msg("processing eventbus event")

	_, err := pool.Exec(ctx, `
		INSERT INTO sync_progress (chain_id, checkpoint, block_number, block_timestamp, is_reorg, reorg_from, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (chain_id) DO UPDATE SET
			checkpoint = CASE WHEN EXCLUDED.is_reorg THEN sync_progress.checkpoint ELSE EXCLUDED.checkpoint END,
			block_number = CASE WHEN EXCLUDED.is_reorg THEN sync_progress.block_number ELSE EXCLUDED.block_number END,
			block_timestamp = CASE WHEN EXCLUDED.is_reorg THEN sync_progress.block_timestamp ELSE EXCLUDED.block_timestamp END,
			is_reorg = EXCLUDED.is_reorg,
			reorg_from = EXCLUDED.reorg_from,
			updated_at = now()
	`,
		ev.ChainID,
		ev.Checkpoint,
		blockNumber,
		blockTimestamp,
		ev.Type == eventbus.Reorg,
		nullableReorgFrom(ev),
	)
	return err
}

func nullableReorgFrom(ev eventbus.Event) *uint64 {
	if ev.Type != eventbus.Reorg {
		return nil
	}
	return &ev.ReorgFrom
}

func chainLabel(chainID uint64) string {
	return fmt.Sprintf("%d", chainID)
}
