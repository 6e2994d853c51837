package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"

	"github.com/0xkanth/evmindexer/internal/chainmodel"
	"github.com/0xkanth/evmindexer/internal/checkpoint"
	"github.com/0xkanth/evmindexer/internal/config"
	"github.com/0xkanth/evmindexer/internal/eventbus"
	"github.com/0xkanth/evmindexer/internal/evmclient"
	"github.com/0xkanth/evmindexer/internal/filter"
	"github.com/0xkanth/evmindexer/internal/pipeline"
	"github.com/0xkanth/evmindexer/internal/progress"
	"github.com/0xkanth/evmindexer/internal/realtime"
	"github.com/0xkanth/evmindexer/internal/registry"
	"github.com/0xkanth/evmindexer/internal/rpc"
	"github.com/0xkanth/evmindexer/internal/runtime"
	"github.com/0xkanth/evmindexer/internal/store"
	"github.com/0xkanth/evmindexer/internal/syncstore"
	"github.com/0xkanth/evmindexer/internal/telemetry"
)

// historicalChunkBlocks is the block-range width of one backfill batch: a
// balance between fewer round trips to the RPC provider and not holding an
// unbounded eth_getLogs response or indexing-store transaction in memory.
const historicalChunkBlocks = 2000

// runnerConfig bundles a chain's static collaborators, built once in main
// and shared across every chain's goroutine.
type runnerConfig struct {
	chainCfg  config.ChainConfig
	logger    zerolog.Logger
	metrics   *telemetry.Metrics
	pgStore   *store.Store
	syncStore *syncstore.Store
	bus       *eventbus.Bus
	rt        *runtime.Runtime
}

// chainEnv is runnerConfig plus the per-chain collaborators dial/setup
// produced, threaded through backfill and pollRealtime.
type chainEnv struct {
	runnerConfig
	queue       *rpc.Queue
	client      *evmclient.Client
	contracts   map[string]common.Address
	set         filter.Set
	abiRegistry *pipeline.ABIRegistry
	childIndex  filter.ChildAddressIndex
	logger      zerolog.Logger
}

func chainLabel(chainID uint64) string {
	return fmt.Sprintf("%d", chainID)
}

// run dials the chain's RPC endpoint, runs setup handlers, backfills from
// the persisted cursor (or StartBlock on a fresh chain) up to the current
// finalized head, then polls for new blocks until ctx is canceled.
func run(ctx context.Context, rc runnerConfig) error {
	logger := rc.logger.With().Uint64("chain_id", rc.chainCfg.ChainID).Str("chain", rc.chainCfg.Name).Logger()

	maxConcurrent := int64(rc.chainCfg.MaxRequestsPerSec)
	queue, err := rpc.Dial(ctx, rc.chainCfg.RPCURLs[0], rc.chainCfg.ChainID, maxConcurrent, logger)
	if err != nil {
		return fmt.Errorf("chain %d: dial rpc: %w", rc.chainCfg.ChainID, err)
	}
	defer queue.Close()

	client := evmclient.New(rc.chainCfg.ChainID, queue, rc.syncStore)
	contracts := contractAddresses(rc.chainCfg)
	set := buildFilters(rc.chainCfg, contracts)
	abiRegistry := buildABIRegistry()
	childIndex := rc.syncStore.ChildAddressIndex(rc.chainCfg.ChainID)

	env := &chainEnv{
		runnerConfig: rc,
		queue:        queue,
		client:       client,
		contracts:    contracts,
		set:          set,
		abiRegistry:  abiRegistry,
		childIndex:   childIndex,
		logger:       logger,
	}

	if err := runSetup(ctx, env); err != nil {
		return fmt.Errorf("chain %d: setup: %w", rc.chainCfg.ChainID, err)
	}

	startBlock := rc.chainCfg.StartBlock
	cursor, ok, err := rc.syncStore.GetCursor(rc.chainCfg.ChainID)
	if err != nil {
		return fmt.Errorf("chain %d: read cursor: %w", rc.chainCfg.ChainID, err)
	}
	if ok {
		startBlock = cursor.LastBlockNumber + 1
	}

	latest, err := queue.LatestBlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("chain %d: latest block number: %w", rc.chainCfg.ChainID, err)
	}
	safeHead := uint64(0)
	if latest > rc.chainCfg.FinalityBlockCount {
		safeHead = latest - rc.chainCfg.FinalityBlockCount
	}

	if startBlock <= safeHead {
		if err := backfill(ctx, env, startBlock, safeHead); err != nil {
			return fmt.Errorf("chain %d: backfill: %w", rc.chainCfg.ChainID, err)
		}
	}
	rc.metrics.SyncIsComplete.WithLabelValues(chainLabel(rc.chainCfg.ChainID)).Set(1)

	finalized, finalizedOK, err := rc.syncStore.GetFinalized(rc.chainCfg.ChainID)
	if err != nil {
		return fmt.Errorf("chain %d: read finalized pointer: %w", rc.chainCfg.ChainID, err)
	}
	if !finalizedOK {
		// Nothing has ever finalized on this chain yet: backfill already
		// indexed everything through safeHead trusting finality, so that's
		// the baseline the first real finalize transition measures against.
		finalized = safeHead
	}

	return pollRealtime(ctx, env, safeHead, finalized)
}

// runSetup runs every registered `<Contract>:setup` handler for this chain
// inside its own indexing transaction, pinned at the chain's start block.
func runSetup(ctx context.Context, env *chainEnv) error {
	tx, err := env.pgStore.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin setup transaction: %w", err)
	}

	err = env.rt.ProcessSetupEvents(ctx, map[uint64]runtime.SetupContext{
		env.chainCfg.ChainID: {
			ChainID:    env.chainCfg.ChainID,
			StartBlock: env.chainCfg.StartBlock,
			Contracts:  env.contracts,
			Client:     env.client,
			DB:         tx,
		},
	})
	if err != nil {
		tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// backfill processes [fromBlock, toBlock] in historicalChunkBlocks-wide
// batches, committing one indexing-store transaction per SplitEvents chunk
// but persisting the sync cursor once per batch — a crash mid-batch
// replays the whole batch rather than resuming mid-way through it, a
// simplification against the per-chunk granularity SplitEvents makes
// possible.
func backfill(ctx context.Context, env *chainEnv, fromBlock, toBlock uint64) error {
	for from := fromBlock; from <= toBlock; from += historicalChunkBlocks {
		to := from + historicalChunkBlocks - 1
		if to > toBlock {
			to = toBlock
		}

		batch, err := fetchRange(ctx, env, from, to)
		if err != nil {
			return fmt.Errorf("fetch range [%d,%d]: %w", from, to, err)
		}

		if err := processBatch(ctx, env, batch, true); err != nil {
			return fmt.Errorf("process range [%d,%d]: %w", from, to, err)
		}

		env.metrics.SyncBlock.WithLabelValues(chainLabel(env.chainCfg.ChainID)).Set(float64(to))
		env.logger.Info().Uint64("from", from).Uint64("to", to).Msg("backfilled block range")

		if err := persistCursor(env, to, false); err != nil {
			return err
		}
	}
	return nil
}

// pollRealtime hands off to internal/realtime once backfill reaches the
// finalized head, seeding its local chain at safeHead so the first Poll
// call gap-fills forward instead of skipping the unfinalized blocks
// between safeHead and the current remote tip.
func pollRealtime(ctx context.Context, env *chainEnv, safeHead, finalized uint64) error {
	src := &queueBlockSource{queue: env.queue}
	svc := realtime.New(env.chainCfg.ChainID, env.chainCfg.FinalityBlockCount, src, env.logger)

	if safeHead > 0 {
		seed, err := src.HeaderByNumber(ctx, safeHead)
		if err != nil {
			return fmt.Errorf("seed realtime chain at %d: %w", safeHead, err)
		}
		if err := svc.Seed(seed); err != nil {
			return fmt.Errorf("seed realtime chain: %w", err)
		}
	}
	svc.SeedFinalized(finalized)

	interval := time.Duration(env.chainCfg.PollIntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	env.metrics.SyncIsRealtime.WithLabelValues(chainLabel(env.chainCfg.ChainID)).Set(1)

	attempt := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		result, err := svc.Poll(ctx)
		if err != nil {
			env.logger.Warn().Err(err).Int("attempt", attempt).Msg("realtime poll failed, backing off")
			delay := realtime.BackoffFor(attempt)
			attempt++
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
			continue
		}
		attempt = 0

		if err := handlePollResult(ctx, env, result); err != nil {
			return err
		}
	}
}

func handlePollResult(ctx context.Context, env *chainEnv, result *realtime.Result) error {
	if result.Kind == realtime.Reorg {
		env.metrics.RealtimeReorgs.WithLabelValues(chainLabel(env.chainCfg.ChainID)).Inc()
		if err := env.bus.Publish(ctx, eventbus.Event{
			Type:      eventbus.Reorg,
			ChainID:   env.chainCfg.ChainID,
			ReorgFrom: result.ReorgFrom,
		}); err != nil {
			env.logger.Error().Err(err).Msg("publish reorg event")
		}
		// Rolling back previously written versioned rows above ReorgFrom is
		// a store-level write-path operation, not something cmd/indexer
		// performs directly; downstream consumers of the reorg event are
		// expected to treat everything at/after ReorgFrom as unconfirmed
		// until the replayed blocks below are reprocessed and
		// re-checkpointed.
	}

	if result.Finalized {
		if err := recordFinalization(ctx, env, result); err != nil {
			env.logger.Error().Err(err).Msg("record finalization")
		}
	}

	if result.Kind == realtime.Identity || len(result.Appended) == 0 {
		return nil
	}

	from := result.Appended[0].Number
	to := result.Appended[len(result.Appended)-1].Number
	batch, err := fetchRange(ctx, env, from, to)
	if err != nil {
		return fmt.Errorf("fetch realtime range [%d,%d]: %w", from, to, err)
	}

	if err := processBatch(ctx, env, batch, false); err != nil {
		return fmt.Errorf("process realtime range [%d,%d]: %w", from, to, err)
	}

	env.metrics.SyncBlock.WithLabelValues(chainLabel(env.chainCfg.ChainID)).Set(float64(to))
	return persistCursor(env, to, true)
}

// recordFinalization implements spec §4.5 step 9's durability requirement: a
// finalize event is never emitted for a block whose cache interval has not
// been durably recorded. It inserts a cache interval for every filter kind
// this chain configures, advances the persisted finalized pointer, and only
// then publishes the finalize event.
func recordFinalization(ctx context.Context, env *chainEnv, result *realtime.Result) error {
	from, to := result.FinalizedFrom, result.FinalizedBlock.Number

	for _, kind := range finalizedIntervalKinds(env.set) {
		if err := env.syncStore.PutInterval(env.chainCfg.ChainID, kind, from, to); err != nil {
			return fmt.Errorf("insert finalized interval [%d,%d] (%s): %w", from, to, kind, err)
		}
	}

	if err := env.syncStore.PutFinalized(env.chainCfg.ChainID, to); err != nil {
		return fmt.Errorf("persist finalized pointer: %w", err)
	}

	env.metrics.SyncFinalizedBlock.WithLabelValues(chainLabel(env.chainCfg.ChainID)).Set(float64(to))

	cp := checkpoint.AtMax(result.FinalizedBlock.Timestamp, env.chainCfg.ChainID, to)
	if err := env.bus.Publish(ctx, eventbus.Event{
		Type:       eventbus.Finalize,
		ChainID:    env.chainCfg.ChainID,
		Checkpoint: string(cp),
	}); err != nil {
		return fmt.Errorf("publish finalize event: %w", err)
	}

	env.logger.Info().Uint64("from", from).Uint64("to", to).Msg("finalized block range")
	return nil
}

// finalizedIntervalKinds lists the filter.Kind values this chain's filter
// set actually configures, each of which gets its own cache interval record
// (spec §6 insertRealtimeInterval, "for each filter kind").
func finalizedIntervalKinds(set filter.Set) []string {
	var kinds []string
	if len(set.Blocks) > 0 {
		kinds = append(kinds, string(filter.KindBlock))
	}
	if len(set.Transactions) > 0 {
		kinds = append(kinds, string(filter.KindTransaction))
	}
	if len(set.Logs) > 0 {
		kinds = append(kinds, string(filter.KindLog))
	}
	if len(set.Traces) > 0 {
		kinds = append(kinds, string(filter.KindTrace))
	}
	if len(set.Transfers) > 0 {
		kinds = append(kinds, string(filter.KindTransfer))
	}
	return kinds
}

func persistCursor(env *chainEnv, lastBlockNumber uint64, isRealtime bool) error {
	return env.syncStore.PutCursor(syncstore.Cursor{
		ChainID:         env.chainCfg.ChainID,
		LastBlockNumber: lastBlockNumber,
		IsRealtime:      isRealtime,
	})
}

// processBatch runs a fetched range through BuildEvents/DecodeEvents/
// SplitEvents and dispatches each resulting chunk inside its own indexing
// transaction, publishing a checkpoint event to the downstream event bus
// after each chunk commits.
func processBatch(ctx context.Context, env *chainEnv, batch pipeline.Batch, historical bool) error {
	if err := discoverFactoryChildren(env, batch); err != nil {
		return fmt.Errorf("discover factory children: %w", err)
	}

	raw, err := pipeline.BuildEvents(env.set, batch)
	if err != nil {
		return fmt.Errorf("build events: %w", err)
	}
	decoded, err := pipeline.DecodeEvents(env.abiRegistry, raw)
	if err != nil {
		return fmt.Errorf("decode events: %w", err)
	}
	chunks, err := pipeline.SplitEvents(decoded)
	if err != nil {
		return fmt.Errorf("split events: %w", err)
	}

	for _, chunk := range chunks {
		if err := processChunk(ctx, env, chunk, historical); err != nil {
			return err
		}
	}
	return nil
}

func processChunk(ctx context.Context, env *chainEnv, chunk pipeline.Chunk, historical bool) error {
	tx, err := env.pgStore.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin chunk transaction: %w", err)
	}

	rcx := &registry.Context{
		ChainID:   env.chainCfg.ChainID,
		Contracts: env.contracts,
		Client:    env.client,
		DB:        tx,
	}

	var dispatchErr error
	if historical {
		dispatchErr = env.rt.ProcessHistoricalEvents(ctx, chunk.Events, rcx, tx.Cache)
	} else {
		dispatchErr = env.rt.ProcessRealtimeEvents(ctx, chunk.Events, rcx)
	}

	if dispatchErr != nil {
		tx.Rollback(ctx)
		var herr *progress.HandlerError
		if errors.As(dispatchErr, &herr) && herr.Killed {
			return nil
		}
		return dispatchErr
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit chunk transaction: %w", err)
	}

	return env.bus.Publish(ctx, eventbus.Event{
		Type:       eventbus.Checkpoint,
		ChainID:    chunk.ChainID,
		Checkpoint: string(chunk.Through),
	})
}

// queueBlockSource adapts rpc.Queue (which speaks *types.Header) to
// realtime.BlockSource (which speaks chainmodel.LightBlock).
type queueBlockSource struct {
	queue *rpc.Queue
}

func (q *queueBlockSource) LatestHeader(ctx context.Context) (chainmodel.LightBlock, error) {
	n, err := q.queue.LatestBlockNumber(ctx)
	if err != nil {
		return chainmodel.LightBlock{}, err
	}
	return q.HeaderByNumber(ctx, n)
}

func (q *queueBlockSource) HeaderByNumber(ctx context.Context, number uint64) (chainmodel.LightBlock, error) {
	h, err := q.queue.HeaderByNumber(ctx, number)
	if err != nil {
		return chainmodel.LightBlock{}, err
	}
	return chainmodel.LightBlock{
		Hash:       h.Hash(),
		ParentHash: h.ParentHash,
		Number:     h.Number.Uint64(),
		Timestamp:  h.Time,
		LogsBloom:  h.Bloom,
	}, nil
}

// discoverFactoryChildren implements the prerequisite spec §4.5 step 3
// names before the regular filter pass runs: every log in batch matching a
// configured factory-source filter has its child address extracted and
// recorded in the sync store, so that same pass's Factory-ref filters (via
// env.childIndex) can resolve it immediately — batch.ChildAddress is backed
// by the same store this writes to.
func discoverFactoryChildren(env *chainEnv, batch pipeline.Batch) error {
	sources := env.set.FactoryLogFilters()
	if len(sources) == 0 {
		return nil
	}

	for _, l := range batch.Logs {
		fl := filter.Log{
			Address: l.Address,
			Topics:  l.Topics,
			Data:    l.Data,
			TxHash:  l.TxHash,
			TxIndex: uint(l.TxIndex),
			Index:   uint(l.Index),
			Removed: l.Removed,
		}
		for _, f := range sources {
			if !filter.IsLogFilterMatched(f, env.childIndex, fl, l.BlockNumber) {
				continue
			}
			child, ok := filter.ExtractChildAddress(f, fl)
			if !ok {
				continue
			}
			if err := env.syncStore.PutFactoryChild(env.chainCfg.ChainID, f.FactorySource, child.Hex(), l.BlockNumber); err != nil {
				return fmt.Errorf("record factory child %s for %s: %w", child.Hex(), f.FactorySource, err)
			}
		}
	}
	return nil
}

// fetchLogs implements spec §4.5 steps 1-2: skip eth_getLogs entirely when
// no factory source is configured and every block in the range has a
// zero/non-matching bloom, and fail fast if the bloom indicated a possible
// match but the RPC returned none — a stale or lying node is a sync
// correctness problem, not something to silently index around.
func fetchLogs(ctx context.Context, env *chainEnv, batch *pipeline.Batch, fromBlock, toBlock uint64) error {
	if len(env.set.Logs) == 0 {
		return nil
	}

	addresses := env.set.LogAddresses()
	topics := env.set.LogTopicSelectors()
	hasFactory := env.set.HasFactory()

	bloomHit := false
	for _, b := range batch.Blocks {
		if filter.BloomMightContain(b.LogsBloom.Bytes(), addresses, topics) {
			bloomHit = true
			break
		}
	}

	if !hasFactory && !bloomHit {
		return nil
	}

	logs, err := env.queue.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
	})
	if err != nil {
		return fmt.Errorf("filter logs [%d,%d]: %w", fromBlock, toBlock, err)
	}

	if bloomHit && len(logs) == 0 {
		return fmt.Errorf("filter logs [%d,%d]: bloom filter indicated matching logs but eth_getLogs returned none", fromBlock, toBlock)
	}

	batch.Logs = logs
	return nil
}

// fetchRange pulls every block, transaction, and (if any configured filter
// needs one) receipt in [fromBlock, toBlock], plus every log in that range
// via an unfiltered eth_getLogs call, which fetchLogs skips when no block's
// bloom can match and no filter uses a factory. Trace fetching is left empty: the
// pipeline's Trace/Transfer matching exists for a debug_trace-style
// collaborator this module does not implement, the same out-of-scope
// boundary pipeline's own doc comment notes.
func fetchRange(ctx context.Context, env *chainEnv, fromBlock, toBlock uint64) (pipeline.Batch, error) {
	batch := pipeline.Batch{
		ChainID:      env.chainCfg.ChainID,
		Receipts:     map[common.Hash]*types.Receipt{},
		ChildAddress: env.childIndex,
	}

	signer := types.LatestSignerForChainID(new(big.Int).SetUint64(env.chainCfg.ChainID))

	for n := fromBlock; n <= toBlock; n++ {
		block, err := env.queue.BlockByNumber(ctx, n)
		if err != nil {
			return pipeline.Batch{}, fmt.Errorf("fetch block %d: %w", n, err)
		}

		batch.Blocks = append(batch.Blocks, chainmodel.LightBlock{
			Hash:       block.Hash(),
			ParentHash: block.ParentHash(),
			Number:     block.NumberU64(),
			Timestamp:  block.Time(),
			LogsBloom:  block.Bloom(),
		})

		for i, tx := range block.Transactions() {
			from, err := types.Sender(signer, tx)
			if err != nil {
				env.logger.Warn().Err(err).Str("tx", tx.Hash().Hex()).Msg("recovering transaction sender failed, using zero address")
			}
			batch.Transactions = append(batch.Transactions, pipeline.TxRecord{
				Tx:          tx,
				From:        from,
				To:          tx.To(),
				BlockNumber: n,
				Index:       uint(i),
			})
		}
	}

	if err := fetchLogs(ctx, env, &batch, fromBlock, toBlock); err != nil {
		return pipeline.Batch{}, err
	}

	if env.set.AnyRequiresReceipt() {
		seen := map[common.Hash]bool{}
		for _, tx := range batch.Transactions {
			h := tx.Tx.Hash()
			if seen[h] {
				continue
			}
			seen[h] = true
			receipt, err := env.queue.TransactionReceipt(ctx, h)
			if err != nil {
				return pipeline.Batch{}, fmt.Errorf("fetch receipt %s: %w", h.Hex(), err)
			}
			batch.Receipts[h] = receipt
		}
	}

	return batch, nil
}
