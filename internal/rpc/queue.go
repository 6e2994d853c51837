// Package rpc wraps a go-ethereum JSON-RPC client behind a bounded-concurrency
// queue, so a chain's realtime sync loop, historical backfill, and read-only
// contract calls all share one cap on in-flight requests against a single
// provider endpoint.
package rpc

import (
	"context"
	"fmt"
	"math/big"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// Queue is a concurrency-bounded façade over an ethclient.Client. Every
// exported method acquires one slot of the weighted semaphore before issuing
// its RPC call and releases it on return, so a slow provider backs up
// callers instead of letting goroutines pile up against it unbounded.
type Queue struct {
	client  *ethclient.Client
	sem     *semaphore.Weighted
	chainID *big.Int
	logger  zerolog.Logger
}

// Dial connects to rpcURL and verifies it reports expectedChainID, mirroring
// the teacher's internal/chain.NewClient chain-id verification but without
// the teacher's hardcoded websocket-optional branch (realtime sync here
// polls rather than subscribes; see internal/realtime).
func Dial(ctx context.Context, rpcURL string, expectedChainID uint64, maxConcurrent int64, logger zerolog.Logger) (*Queue, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("rpc: dial %s: %w", rpcURL, err)
	}

	actual, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("rpc: fetch chain id from %s: %w", rpcURL, err)
	}
	want := new(big.Int).SetUint64(expectedChainID)
	if actual.Cmp(want) != 0 {
		client.Close()
		return nil, fmt.Errorf("rpc: chain id mismatch at %s: want %d, got %s", rpcURL, expectedChainID, actual)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}

	return &Queue{
		client:  client,
		sem:     semaphore.NewWeighted(maxConcurrent),
		chainID: want,
		logger:  logger.With().Str("component", "rpc").Uint64("chain_id", expectedChainID).Logger(),
	}, nil
}

// ChainID returns the verified chain ID.
func (q *Queue) ChainID() *big.Int {
	return q.chainID
}

// Close releases the underlying client. Queued callers blocked on the
// semaphore are not woken; callers are expected to have stopped issuing new
// requests before Close is called.
func (q *Queue) Close() {
	q.client.Close()
}

func (q *Queue) acquire(ctx context.Context) error {
	if err := q.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("rpc: acquiring queue slot: %w", err)
	}
	return nil
}

// Do runs fn while holding one queue slot, recording its duration. It is the
// escape hatch for RPC calls this package does not wrap directly (e.g.
// eth_getProof).
func (q *Queue) Do(ctx context.Context, method string, fn func(ctx context.Context, client *ethclient.Client) error) error {
	if err := q.acquire(ctx); err != nil {
		return err
	}
	defer q.sem.Release(1)

	start := time.Now()
	err := fn(ctx, q.client)
	q.logger.Debug().
		Str("method", method).
		Dur("duration", time.Since(start)).
		Err(err).
		Msg("rpc call completed")
	return err
}

// LatestBlockNumber returns the chain's current head block number.
func (q *Queue) LatestBlockNumber(ctx context.Context) (uint64, error) {
	var n uint64
	err := q.Do(ctx, "eth_blockNumber", func(ctx context.Context, c *ethclient.Client) error {
		var err error
		n, err = c.BlockNumber(ctx)
		return err
	})
	return n, err
}

// BlockByNumber fetches a full block by number.
func (q *Queue) BlockByNumber(ctx context.Context, number uint64) (*types.Block, error) {
	var block *types.Block
	err := q.Do(ctx, "eth_getBlockByNumber", func(ctx context.Context, c *ethclient.Client) error {
		var err error
		block, err = c.BlockByNumber(ctx, new(big.Int).SetUint64(number))
		return err
	})
	return block, err
}

// HeaderByNumber fetches only a block's header, used by the realtime poll
// loop when log/trace filters don't require full transaction bodies.
func (q *Queue) HeaderByNumber(ctx context.Context, number uint64) (*types.Header, error) {
	var header *types.Header
	err := q.Do(ctx, "eth_getBlockByNumber(header)", func(ctx context.Context, c *ethclient.Client) error {
		var err error
		header, err = c.HeaderByNumber(ctx, new(big.Int).SetUint64(number))
		return err
	})
	return header, err
}

// TransactionReceipt fetches a single transaction's receipt.
func (q *Queue) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	var receipt *types.Receipt
	err := q.Do(ctx, "eth_getTransactionReceipt", func(ctx context.Context, c *ethclient.Client) error {
		var err error
		receipt, err = c.TransactionReceipt(ctx, hash)
		return err
	})
	return receipt, err
}

// FilterLogs queries logs matching query, the fallback path when a block's
// bloom filter can't rule out a match.
func (q *Queue) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	var logs []types.Log
	err := q.Do(ctx, "eth_getLogs", func(ctx context.Context, c *ethclient.Client) error {
		var err error
		logs, err = c.FilterLogs(ctx, query)
		return err
	})
	return logs, err
}

// CallContract issues an eth_call, used by internal/evmclient for read-only
// contract reads (ReadContract, Multicall).
func (q *Queue) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	var out []byte
	err := q.Do(ctx, "eth_call", func(ctx context.Context, c *ethclient.Client) error {
		var err error
		out, err = c.CallContract(ctx, msg, blockNumber)
		return err
	})
	return out, err
}

// BalanceAt fetches a native-token balance at a given block.
func (q *Queue) BalanceAt(ctx context.Context, addr common.Address, blockNumber *big.Int) (*big.Int, error) {
	var bal *big.Int
	err := q.Do(ctx, "eth_getBalance", func(ctx context.Context, c *ethclient.Client) error {
		var err error
		bal, err = c.BalanceAt(ctx, addr, blockNumber)
		return err
	})
	return bal, err
}

// CodeAt fetches deployed bytecode at a given block.
func (q *Queue) CodeAt(ctx context.Context, addr common.Address, blockNumber *big.Int) ([]byte, error) {
	var code []byte
	err := q.Do(ctx, "eth_getCode", func(ctx context.Context, c *ethclient.Client) error {
		var err error
		code, err = c.CodeAt(ctx, addr, blockNumber)
		return err
	})
	return code, err
}

// StorageAt fetches a raw storage slot at a given block.
func (q *Queue) StorageAt(ctx context.Context, addr common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error) {
	var val []byte
	err := q.Do(ctx, "eth_getStorageAt", func(ctx context.Context, c *ethclient.Client) error {
		var err error
		val, err = c.StorageAt(ctx, addr, key, blockNumber)
		return err
	})
	return val, err
}
