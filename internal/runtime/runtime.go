// Package runtime implements the indexing runtime (spec §4.6): the
// component that owns the current Event pointer, dispatches each event to
// its registered handler, tracks per-handler counts and timing, classifies
// and annotates handler errors, and narrows the indexing store's include
// set once column access has stabilized during backfill.
package runtime

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/0xkanth/evmindexer/internal/chainmodel"
	"github.com/0xkanth/evmindexer/internal/checkpoint"
	"github.com/0xkanth/evmindexer/internal/evmclient"
	"github.com/0xkanth/evmindexer/internal/progress"
	"github.com/0xkanth/evmindexer/internal/registry"
	"github.com/0xkanth/evmindexer/internal/store"
	"github.com/0xkanth/evmindexer/internal/telemetry"
)

// defaultNarrowThreshold is the "empirically chosen" event count spec §4.6
// names before the runtime swaps historical backfill over to a narrowed
// include set.
const defaultNarrowThreshold = 1000

// yieldEvery is how often (in events) the runtime checks ctx for
// cancellation during a batch. No progress metric is updated at that point.
const yieldEvery = 93

// SetupContext is the per-chain context a `<Contract>:setup` handler runs
// with, pinned at the chain's configured start block.
type SetupContext struct {
	ChainID    uint64
	StartBlock uint64
	Contracts  map[string]common.Address
	Client     *evmclient.Client
	DB         *store.Tx
}

// Config wires a Runtime's collaborators.
type Config struct {
	Logger          zerolog.Logger
	Metrics         *telemetry.Metrics
	Registry        *registry.Registry
	SourceRoot      string // trims CaptureUserStack frames to user handler code
	OnFatalError    progress.OnFatalError
	NarrowThreshold int // 0 uses defaultNarrowThreshold
}

// Runtime dispatches decoded events to registered handlers, the
// single-threaded cooperative scheduler described in spec §5.
type Runtime struct {
	registry        *registry.Registry
	metrics         *telemetry.Metrics
	logger          zerolog.Logger
	sourceRoot      string
	onFatalError    progress.OnFatalError
	narrowThreshold int

	eventCounts chainmodel.EventCount
	accessed    map[string]map[string]struct{} // table -> accumulated accessed columns
	processed   int
	narrowed    bool

	killed atomic.Bool
}

// New builds a Runtime from cfg.
func New(cfg Config) *Runtime {
	threshold := cfg.NarrowThreshold
	if threshold <= 0 {
		threshold = defaultNarrowThreshold
	}
	return &Runtime{
		registry:        cfg.Registry,
		metrics:         cfg.Metrics,
		logger:          cfg.Logger.With().Str("component", "runtime").Logger(),
		sourceRoot:      cfg.SourceRoot,
		onFatalError:    cfg.OnFatalError,
		narrowThreshold: threshold,
		eventCounts:     chainmodel.EventCount{},
		accessed:        map[string]map[string]struct{}{},
	}
}

// EventCounts returns the live per-handler matched-event tallies.
func (rt *Runtime) EventCounts() chainmodel.EventCount {
	return rt.eventCounts
}

// Kill marks the runtime as killed. Cooperative: long-running handlers are
// not interrupted mid-flight; ProcessHistoricalEvents/ProcessRealtimeEvents
// only observe it between events.
func (rt *Runtime) Kill() {
	rt.killed.Store(true)
}

// IsKilled reports whether Kill has been called.
func (rt *Runtime) IsKilled() bool {
	return rt.killed.Load()
}

// ProcessSetupEvents invokes every registered `<Contract>:setup` handler
// once per chain it is configured on (spec §4.6), with context pinned at
// {chainId, blockNumber=startBlock, checkpoint=ZERO with chainId+blockNumber}.
func (rt *Runtime) ProcessSetupEvents(ctx context.Context, chains map[uint64]SetupContext) error {
	for contract, entry := range rt.registry.SetupHandlers() {
		for _, chainID := range entry.Chains {
			sc, ok := chains[chainID]
			if !ok {
				continue
			}
			rc := &registry.Context{
				ChainID:     chainID,
				Contracts:   sc.Contracts,
				Client:      sc.Client,
				DB:          sc.DB,
				BlockNumber: sc.StartBlock,
				Checkpoint:  checkpoint.Encode(checkpoint.Parts{ChainID: chainID, BlockNumber: sc.StartBlock}),
			}
			if err := entry.Fn(ctx, rc); err != nil {
				return fmt.Errorf("runtime: setup handler %q on chain %d: %w", contract, chainID, err)
			}
		}
	}
	return nil
}

// ProcessHistoricalEvents dispatches a backfill batch. Column-access
// tracking accumulates across calls; once the accumulated event count
// crosses the configured threshold, the runtime narrows cache's include set
// to exactly the columns observed accessed so far, for every future call.
func (rt *Runtime) ProcessHistoricalEvents(ctx context.Context, events []chainmodel.Event, rc *registry.Context, cache *store.Cache) error {
	for i, ev := range events {
		if rt.IsKilled() {
			return nil
		}
		if err := rt.dispatch(ctx, ev, rc); err != nil {
			return err
		}

		rt.processed++
		rt.accumulate(cache)
		if rt.processed >= rt.narrowThreshold && !rt.narrowed {
			rt.applyNarrowing(cache)
			rt.narrowed = true
		}

		if (i+1)%yieldEvery == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
	}
	return nil
}

// ProcessRealtimeEvents dispatches an already-ordered batch produced by the
// realtime sync service plus the event pipeline. No include-narrowing:
// realtime batches are small and the narrowed set (if any) from historical
// backfill already applies to cache.
func (rt *Runtime) ProcessRealtimeEvents(ctx context.Context, events []chainmodel.Event, rc *registry.Context) error {
	for i, ev := range events {
		if rt.IsKilled() {
			return nil
		}
		if err := rt.dispatch(ctx, ev, rc); err != nil {
			return err
		}
		if (i+1)%yieldEvery == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
	}
	return nil
}

// dispatch runs the five steps of spec §4.6's per-event dispatch.
func (rt *Runtime) dispatch(ctx context.Context, event chainmodel.Event, rc *registry.Context) error {
	rt.eventCounts.Inc(event.HandlerName)

	rc.BlockNumber = event.Block.Number
	rc.Checkpoint = event.Checkpoint
	rc.ChainID = event.ChainID

	chainLabel := strconv.FormatUint(event.ChainID, 10)

	fn, ok := rt.registry.Handler(event.HandlerName)
	if !ok {
		return fmt.Errorf("runtime: no handler registered for %q", event.HandlerName)
	}

	start := time.Now()
	err := fn(ctx, event, rc)
	elapsed := time.Since(start)

	if rt.metrics != nil {
		rt.metrics.IndexingFunctionDuration.WithLabelValues(chainLabel, event.HandlerName).Observe(elapsed.Seconds())
	}

	if err != nil {
		herr := &progress.HandlerError{
			Meta:  eventMeta(event),
			Stack: progress.CaptureUserStack(rt.sourceRoot, 1),
			Err:   err,
		}

		if rt.metrics != nil {
			rt.metrics.IndexingHasError.WithLabelValues(chainLabel).Set(1)
		}

		if progress.Classify(err) == progress.Fatal && rt.onFatalError != nil {
			herr.Killed = true
			rt.onFatalError(&progress.FatalError{Reason: fmt.Sprintf("handler %q", event.HandlerName), Err: herr})
		}

		return herr
	}

	if rt.metrics != nil {
		rt.metrics.IndexingCompletedEvents.WithLabelValues(chainLabel, event.HandlerName).Inc()
		rt.metrics.IndexingTimestamp.WithLabelValues(chainLabel).Set(float64(event.Block.Timestamp))
	}
	return nil
}

func eventMeta(event chainmodel.Event) progress.EventMeta {
	meta := progress.EventMeta{
		ChainID:     event.ChainID,
		HandlerName: event.HandlerName,
		BlockNumber: event.Block.Number,
	}
	if event.Transaction != nil {
		meta.TransactionHash = event.Transaction.Hash().Hex()
	}
	if event.Log != nil {
		idx := event.Log.Index
		meta.LogIndex = &idx
	}
	return meta
}

// accumulate merges cache's currently tracked accessed columns into the
// runtime's running per-table union.
func (rt *Runtime) accumulate(cache *store.Cache) {
	if cache == nil {
		return
	}
	for table, cols := range cache.AccessedColumns() {
		set, ok := rt.accessed[table]
		if !ok {
			set = map[string]struct{}{}
			rt.accessed[table] = set
		}
		for _, c := range cols {
			set[c] = struct{}{}
		}
	}
}

// applyNarrowing pushes the accumulated per-table include sets into cache,
// per spec §8 property 9: "after >= threshold events, filter.include
// contains exactly the union of columns accessed during that window".
func (rt *Runtime) applyNarrowing(cache *store.Cache) {
	if cache == nil {
		return
	}
	for table, set := range rt.accessed {
		cols := make([]string, 0, len(set))
		for c := range set {
			cols = append(cols, c)
		}
		cache.SetInclude(table, cols)
	}
	rt.logger.Info().Int("threshold", rt.narrowThreshold).Int("tables", len(rt.accessed)).Msg("narrowed indexing store include set")
}
