// Package chainmodel defines the core entities shared by the pipeline,
// realtime sync, and indexing runtime: chains, light blocks, the in-memory
// local chain used for reorg detection, and the canonical RawEvent/Event
// records that flow between them.
package chainmodel

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/0xkanth/evmindexer/internal/checkpoint"
)

// Chain is an immutable description of one indexed network.
type Chain struct {
	ID                 uint64
	Name               string
	PollInterval       uint64 // seconds
	FinalityBlockCount uint64
}

// LightBlock is the minimal block view kept in the local chain for cheap
// reorg detection (spec §3).
type LightBlock struct {
	Hash       common.Hash
	ParentHash common.Hash
	Number     uint64
	Timestamp  uint64
	LogsBloom  types.Bloom
}

// RawEvent is the canonical pre-decode record produced by the event pipeline.
type RawEvent struct {
	ChainID            uint64
	EventCallbackIndex int // index into the matched Filter's Handler registration
	HandlerName        string
	Checkpoint         checkpoint.Checkpoint
	Block              LightBlock
	Transaction        *types.Transaction
	TransactionReceipt *types.Receipt
	Log                *types.Log
	Trace              *Trace
}

// Trace is a minimal call-frame trace record (the concrete RPC "debug_trace"
// style collaborator is out of scope; this is the shape the pipeline needs).
type Trace struct {
	From     common.Address
	To       *common.Address
	CallType string
	Input    []byte
	Output   []byte
	Value    *big.Int
	Error    string
	Index    uint
	TxHash   common.Hash
	TxIndex  uint
}

// Event is the canonical, decoded record handed to user handlers.
type Event struct {
	RawEvent
	DecodedArgs   any // decoded log topics/data, or function call args for traces
	DecodedOutput any // decoded trace output, nil for non-traces
}

// EventCount tracks matched event counts per handler name, monotonic within
// a run (spec §3).
type EventCount map[string]int

// Inc increments the count for handler and returns the new value.
func (c EventCount) Inc(handler string) int {
	c[handler]++
	return c[handler]
}

// LocalChain is the ordered, in-memory tail of blocks above the finalized
// block, leftmost = oldest. See spec §3 for its invariants.
type LocalChain struct {
	blocks []LightBlock
}

// NewLocalChain returns an empty local chain.
func NewLocalChain() *LocalChain {
	return &LocalChain{}
}

// Tip returns the most recently appended block, or the zero value and false
// if the chain is empty.
func (c *LocalChain) Tip() (LightBlock, bool) {
	if len(c.blocks) == 0 {
		return LightBlock{}, false
	}
	return c.blocks[len(c.blocks)-1], true
}

// Len reports how many blocks are currently tracked.
func (c *LocalChain) Len() int {
	return len(c.blocks)
}

// Blocks returns the tracked blocks oldest-first. Callers must not mutate
// the returned slice.
func (c *LocalChain) Blocks() []LightBlock {
	return c.blocks
}

// Append adds a new block to the tip, enforcing the strictly-increasing
// number and parent-linkage invariants from spec §3.
func (c *LocalChain) Append(b LightBlock) error {
	if tip, ok := c.Tip(); ok {
		if b.Number != tip.Number+1 {
			return fmt.Errorf("localchain: non-contiguous append: tip=%d new=%d", tip.Number, b.Number)
		}
		if b.ParentHash != tip.Hash {
			return fmt.Errorf("localchain: parent hash mismatch appending block %d", b.Number)
		}
	}
	c.blocks = append(c.blocks, b)
	return nil
}

// PopTip removes and returns the current tip.
func (c *LocalChain) PopTip() (LightBlock, bool) {
	tip, ok := c.Tip()
	if !ok {
		return LightBlock{}, false
	}
	c.blocks = c.blocks[:len(c.blocks)-1]
	return tip, true
}

// TruncateFrom drops every block with Number >= number, used when a reorg's
// remote head is lower than (or equal to) blocks we hold locally.
func (c *LocalChain) TruncateFrom(number uint64) {
	i := 0
	for ; i < len(c.blocks); i++ {
		if c.blocks[i].Number >= number {
			break
		}
	}
	c.blocks = c.blocks[:i]
}

// PruneUpTo drops every block with Number <= number (inclusive), used after
// finalization advances past them.
func (c *LocalChain) PruneUpTo(number uint64) {
	i := 0
	for ; i < len(c.blocks); i++ {
		if c.blocks[i].Number > number {
			break
		}
	}
	c.blocks = c.blocks[i:]
}

// FindByNumber returns the tracked block with the given number, if any.
func (c *LocalChain) FindByNumber(number uint64) (LightBlock, bool) {
	for _, b := range c.blocks {
		if b.Number == number {
			return b, true
		}
	}
	return LightBlock{}, false
}

// Empty reports whether no blocks are tracked.
func (c *LocalChain) Empty() bool {
	return len(c.blocks) == 0
}
