// Package store implements the indexing store + write-through cache: the
// per-row cache fronting the SQL tables that handlers read and write
// through, backed by pgxpool and a versioned-row schema with
// effective_from/effective_to windows.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/0xkanth/evmindexer/internal/telemetry"
)

// LatestCheckpoint is the sentinel effective_to value representing the open
// interval of a row's current version.
const LatestCheckpoint = "latest"

// Store owns the connection pool every indexing transaction is drawn from.
type Store struct {
	pool    *pgxpool.Pool
	logger  zerolog.Logger
	metrics *telemetry.Metrics

	// installTriggers is invoked at most once per Tx, lazily, the first
	// time that Tx's raw SQL escape hatch is used.
	installTriggers func(ctx context.Context, tx pgx.Tx) error
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string, logger zerolog.Logger, metrics *telemetry.Metrics) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("store: parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	return &Store{
		pool:    pool,
		logger:  logger.With().Str("component", "store").Logger(),
		metrics: metrics,
	}, nil
}

// SetTriggerInstaller registers the hook Tx.QB.Raw runs (exactly once per
// transaction) before the first raw SQL statement executes.
func (s *Store) SetTriggerInstaller(fn func(ctx context.Context, tx pgx.Tx) error) {
	s.installTriggers = fn
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Pool exposes the underlying pgxpool.Pool for callers that need it outside
// an indexing transaction (migrations, health checks).
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Tx is one indexing transaction: a pgx.Tx, the QueryBuilder bound to it,
// and the Cache bound to that QueryBuilder. The runtime opens exactly one
// of these per event-processing unit (a historical batch, or a realtime
// block's event group) per the concurrency model's "cache is bound to
// exactly one in-flight transaction" rule.
type Tx struct {
	pgxTx pgx.Tx
	QB    *PgQueryBuilder
	Cache *Cache
}

// Begin starts a new indexing transaction.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	pgxTx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: begin transaction: %w", err)
	}
	qb := newPgQueryBuilder(pgxTx, s.logger, s.metrics, s.installTriggers)
	return &Tx{
		pgxTx: pgxTx,
		QB:    qb,
		Cache: NewCache(qb, s.metrics),
	}, nil
}

// Commit flushes the cache's bookkeeping and commits the underlying
// transaction.
func (t *Tx) Commit(ctx context.Context) error {
	if err := t.Cache.Flush(ctx); err != nil {
		return err
	}
	return t.pgxTx.Commit(ctx)
}

// Rollback discards the cache and rolls back the underlying transaction,
// used on handler error and on reorg.
func (t *Tx) Rollback(ctx context.Context) error {
	t.Cache.Clear()
	return t.pgxTx.Rollback(ctx)
}
