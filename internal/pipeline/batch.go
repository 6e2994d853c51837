// Package pipeline transforms aligned chain data into checkpoint-ordered,
// decoded events: BuildEvents, DecodeEvents, SplitEvents from spec §4.3.
package pipeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/0xkanth/evmindexer/internal/chainmodel"
	"github.com/0xkanth/evmindexer/internal/checkpoint"
	"github.com/0xkanth/evmindexer/internal/filter"
)

// ErrMissingReceipt is returned by BuildEvents when a matched filter demands
// a receipt that was never fetched for that transaction.
var ErrMissingReceipt = errors.New("pipeline: matched filter requires a receipt that was not fetched")

// Batch is the block-aligned input to BuildEvents: one chain's worth of
// blocks plus the transactions/receipts/logs/traces observed within them.
type Batch struct {
	ChainID      uint64
	Blocks       []chainmodel.LightBlock
	Transactions []TxRecord
	Receipts     map[common.Hash]*types.Receipt
	Logs         []types.Log
	Traces       []chainmodel.Trace
	ChildAddress filter.ChildAddressIndex
}

// TxRecord pairs a transaction with the block and position it was mined at;
// BuildEvents walks transactions in (blockNumber, txIndex) order
// independently of which block batch they arrived in.
type TxRecord struct {
	Tx          *types.Transaction
	From        common.Address
	To          *common.Address
	BlockNumber uint64
	Index       uint
}

type blockIndex map[uint64]chainmodel.LightBlock

func indexBlocks(blocks []chainmodel.LightBlock) blockIndex {
	idx := make(blockIndex, len(blocks))
	for _, b := range blocks {
		idx[b.Number] = b
	}
	return idx
}

func toFilterBlock(b chainmodel.LightBlock) filter.Block {
	return filter.Block{
		Hash:       b.Hash,
		ParentHash: b.ParentHash,
		Number:     b.Number,
		Timestamp:  b.Timestamp,
		LogsBloom:  b.LogsBloom.Bytes(),
	}
}

func toFilterTx(tx TxRecord) filter.Transaction {
	return filter.Transaction{
		Hash:  tx.Tx.Hash(),
		From:  tx.From,
		To:    tx.To,
		Index: tx.Index,
	}
}

func toFilterReceipt(r *types.Receipt) *filter.Receipt {
	if r == nil {
		return nil
	}
	return &filter.Receipt{Status: r.Status}
}

func toFilterLog(l types.Log) filter.Log {
	return filter.Log{
		Address: l.Address,
		Topics:  l.Topics,
		Data:    l.Data,
		TxHash:  l.TxHash,
		TxIndex: uint(l.TxIndex),
		Index:   uint(l.Index),
		Removed: l.Removed,
	}
}

func toFilterTrace(t chainmodel.Trace) filter.Trace {
	return filter.Trace{
		From:     t.From,
		To:       t.To,
		CallType: filter.CallType(t.CallType),
		Input:    t.Input,
		Value:    t.Value,
		Error:    t.Error,
		TxHash:   t.TxHash,
		TxIndex:  t.TxIndex,
		Index:    t.Index,
	}
}

// BuildEvents implements spec §4.3 buildEvents: partitions callbacks by
// filter kind, walks blocks/transactions/traces/logs in order, and emits a
// checkpoint-sorted slice of RawEvents for every match.
func BuildEvents(set filter.Set, batch Batch) ([]chainmodel.RawEvent, error) {
	blocks := indexBlocks(batch.Blocks)
	var events []chainmodel.RawEvent

	for _, b := range batch.Blocks {
		for _, f := range set.Blocks {
			if filter.IsBlockFilterMatched(f, toFilterBlock(b)) {
				events = append(events, chainmodel.RawEvent{
					ChainID:     batch.ChainID,
					HandlerName: f.Handler,
					Checkpoint: checkpoint.Encode(checkpoint.Parts{
						BlockTimestamp: b.Timestamp,
						ChainID:        batch.ChainID,
						BlockNumber:    b.Number,
						EventType:      checkpoint.EventTypeBlock,
						EventIndex:     checkpoint.ZeroIndex,
					}),
					Block: b,
				})
			}
		}
	}

	txs := append([]TxRecord(nil), batch.Transactions...)
	sort.Slice(txs, func(i, j int) bool {
		if txs[i].BlockNumber != txs[j].BlockNumber {
			return txs[i].BlockNumber < txs[j].BlockNumber
		}
		return txs[i].Index < txs[j].Index
	})

	txByHash := make(map[common.Hash]TxRecord, len(txs))
	for _, tx := range txs {
		txByHash[tx.Tx.Hash()] = tx
	}

	for _, tx := range txs {
		b, ok := blocks[tx.BlockNumber]
		if !ok {
			continue
		}
		receipt := batch.Receipts[tx.Tx.Hash()]
		for _, f := range set.Transactions {
			if !filter.IsTransactionFilterMatched(f, batch.ChildAddress, toFilterTx(tx), toFilterReceipt(receipt), tx.BlockNumber) {
				continue
			}
			if f.ReceiptRequired && receipt == nil {
				return nil, fmt.Errorf("%w: tx %s", ErrMissingReceipt, tx.Tx.Hash().Hex())
			}
			events = append(events, chainmodel.RawEvent{
				ChainID:            batch.ChainID,
				HandlerName:        f.Handler,
				Checkpoint:         eventCheckpoint(batch.ChainID, b, tx.Index, checkpoint.EventTypeTransaction, checkpoint.ZeroIndex),
				Block:              b,
				Transaction:        tx.Tx,
				TransactionReceipt: receipt,
			})
		}
	}

	for _, tr := range batch.Traces {
		owner, ok := txByHash[tr.TxHash]
		if !ok {
			continue
		}
		b, ok := blocks[owner.BlockNumber]
		if !ok {
			continue
		}
		receipt := batch.Receipts[tr.TxHash]
		ft := toFilterTrace(tr)

		for _, f := range set.Traces {
			if !filter.IsTraceFilterMatched(f, batch.ChildAddress, ft, owner.BlockNumber) {
				continue
			}
			if f.ReceiptRequired && receipt == nil {
				return nil, fmt.Errorf("%w: trace in tx %s", ErrMissingReceipt, tr.TxHash.Hex())
			}
			tr := tr
			events = append(events, chainmodel.RawEvent{
				ChainID:            batch.ChainID,
				HandlerName:        f.Handler,
				Checkpoint:         eventCheckpoint(batch.ChainID, b, owner.Index, checkpoint.EventTypeTrace, uint64(tr.Index)),
				Block:              b,
				Transaction:        owner.Tx,
				TransactionReceipt: receipt,
				Trace:              &tr,
			})
		}
		for _, f := range set.Transfers {
			if filter.IsTransferFilterMatched(f, batch.ChildAddress, ft, owner.BlockNumber) {
				tr := tr
				events = append(events, chainmodel.RawEvent{
					ChainID:            batch.ChainID,
					HandlerName:        f.Handler,
					Checkpoint:         eventCheckpoint(batch.ChainID, b, owner.Index, checkpoint.EventTypeTrace, uint64(tr.Index)),
					Block:              b,
					Transaction:        owner.Tx,
					TransactionReceipt: receipt,
					Trace:              &tr,
				})
			}
		}
	}

	for _, l := range batch.Logs {
		owner, ok := txByHash[l.TxHash]
		if !ok {
			continue
		}
		b, ok := blocks[owner.BlockNumber]
		if !ok {
			continue
		}
		receipt := batch.Receipts[l.TxHash]
		fl := toFilterLog(l)
		for _, f := range set.Logs {
			if !filter.IsLogFilterMatched(f, batch.ChildAddress, fl, owner.BlockNumber) {
				continue
			}
			if f.ReceiptRequired && receipt == nil {
				return nil, fmt.Errorf("%w: log in tx %s", ErrMissingReceipt, l.TxHash.Hex())
			}
			l := l
			events = append(events, chainmodel.RawEvent{
				ChainID:            batch.ChainID,
				HandlerName:        f.Handler,
				Checkpoint:         eventCheckpoint(batch.ChainID, b, owner.Index, checkpoint.EventTypeLog, uint64(l.Index)),
				Block:              b,
				Transaction:        owner.Tx,
				TransactionReceipt: receipt,
				Log:                &l,
			})
		}
	}

	sort.Slice(events, func(i, j int) bool {
		return checkpoint.Less(events[i].Checkpoint, events[j].Checkpoint)
	})

	return events, nil
}

func eventCheckpoint(chainID uint64, b chainmodel.LightBlock, txIndex uint, eventType checkpoint.EventType, eventIndex uint64) checkpoint.Checkpoint {
	return checkpoint.Encode(checkpoint.Parts{
		BlockTimestamp:   b.Timestamp,
		ChainID:          chainID,
		BlockNumber:      b.Number,
		TransactionIndex: uint64(txIndex),
		EventType:        eventType,
		EventIndex:       eventIndex,
	})
}
