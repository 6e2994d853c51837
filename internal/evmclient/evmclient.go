// Package evmclient is the read-only EVM client handlers use to query chain
// state as of a specific block: native balances, contract bytecode, raw
// storage slots, and ABI-decoded contract reads, including a bounded
// multicall batch. Reads tagged cache:"immutable" are cached indefinitely
// keyed only by (chain, address, call) — independent of block number —
// because their result cannot change once observed (e.g. an ERC20's
// decimals()).
package evmclient

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/0xkanth/evmindexer/internal/rpc"
)

// ImmutableCache is the subset of internal/syncstore.Store this package
// needs for cache:"immutable" reads, kept as an interface so unit tests can
// supply an in-memory fake instead of a real bbolt file.
type ImmutableCache interface {
	GetRPCCache(key string) ([]byte, bool, error)
	PutRPCCache(key string, result []byte) error
}

// Client is the read-only EVM client for one chain.
type Client struct {
	chainID uint64
	queue   *rpc.Queue
	cache   ImmutableCache
}

// New builds a Client over an already-dialed RPC queue.
func New(chainID uint64, queue *rpc.Queue, cache ImmutableCache) *Client {
	return &Client{chainID: chainID, queue: queue, cache: cache}
}

// GetBalance returns the native-token balance of addr at blockNumber (nil
// for "latest").
func (c *Client) GetBalance(ctx context.Context, addr common.Address, blockNumber *big.Int) (*big.Int, error) {
	return c.queue.BalanceAt(ctx, addr, blockNumber)
}

// GetCode returns the deployed bytecode at addr at blockNumber.
func (c *Client) GetCode(ctx context.Context, addr common.Address, blockNumber *big.Int) ([]byte, error) {
	return c.queue.CodeAt(ctx, addr, blockNumber)
}

// GetStorageAt returns a raw 32-byte storage slot at addr/key/blockNumber.
func (c *Client) GetStorageAt(ctx context.Context, addr common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error) {
	return c.queue.StorageAt(ctx, addr, key, blockNumber)
}

// ReadOpts configures a single ReadContract call.
type ReadOpts struct {
	BlockNumber *big.Int // nil means "latest"
	Immutable   bool     // cache:"immutable" — cache the result forever, ignoring BlockNumber
}

// ReadContract ABI-encodes method(args...), issues an eth_call against
// address, and ABI-decodes the single-or-multiple return values.
func (c *Client) ReadContract(ctx context.Context, address common.Address, method abi.Method, args []any, opts ReadOpts) ([]any, error) {
	input, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("evmclient: packing args for %s: %w", method.Name, err)
	}
	calldata := append(append([]byte{}, method.ID...), input...)

	key := cacheKey(c.chainID, address, calldata, opts)
	if opts.Immutable && c.cache != nil {
		if cached, ok, err := c.cache.GetRPCCache(key); err == nil && ok {
			return method.Outputs.Unpack(cached)
		}
	}

	blockNumber := opts.BlockNumber
	if opts.Immutable {
		blockNumber = nil // latest
	}
	out, err := c.callWithRetry(ctx, address, calldata, blockNumber)
	if err != nil {
		return nil, err
	}

	if opts.Immutable && c.cache != nil {
		_ = c.cache.PutRPCCache(key, out)
	}

	return method.Outputs.Unpack(out)
}

// callWithRetry issues the eth_call, retrying once if the response is the
// single byte "0x" — many providers return an empty "0x" for a call that
// actually reverted rather than surfacing a JSON-RPC error, which otherwise
// silently decodes as all-zero return values.
func (c *Client) callWithRetry(ctx context.Context, address common.Address, calldata []byte, blockNumber *big.Int) ([]byte, error) {
	msg := ethereum.CallMsg{To: &address, Data: calldata}

	out, err := c.queue.CallContract(ctx, msg, blockNumber)
	if err != nil {
		return nil, fmt.Errorf("evmclient: eth_call to %s: %w", address.Hex(), err)
	}
	if len(out) == 0 {
		out, err = c.queue.CallContract(ctx, msg, blockNumber)
		if err != nil {
			return nil, fmt.Errorf("evmclient: eth_call retry to %s: %w", address.Hex(), err)
		}
	}
	return out, nil
}

func cacheKey(chainID uint64, address common.Address, calldata []byte, opts ReadOpts) string {
	h := crypto.Keccak256(calldata)
	return fmt.Sprintf("evmclient:%d:%s:%s", chainID, address.Hex(), hex.EncodeToString(h))
}

// MulticallRead is one read to include in a Multicall batch.
type MulticallRead struct {
	Address common.Address
	Method  abi.Method
	Args    []any
}

// MulticallResult pairs a read's decoded values with any per-call error, so
// one failing call in a batch doesn't fail the whole batch.
type MulticallResult struct {
	Values []any
	Err    error
}

// Multicall issues each read independently through the same bounded RPC
// queue (true EIP-2585 Multicall3 batching is left to a future handler-level
// contract call; this gives callers the same "many reads, one block" API
// without requiring a Multicall3 deployment on every indexed chain).
func (c *Client) Multicall(ctx context.Context, blockNumber *big.Int, reads []MulticallRead) ([]MulticallResult, error) {
	results := make([]MulticallResult, len(reads))
	for i, r := range reads {
		values, err := c.ReadContract(ctx, r.Address, r.Method, r.Args, ReadOpts{BlockNumber: blockNumber})
		results[i] = MulticallResult{Values: values, Err: err}
	}
	return results, nil
}
