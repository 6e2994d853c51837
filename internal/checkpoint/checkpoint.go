// Package checkpoint implements the fixed-width, lexicographically ordered
// position token that identifies a unique slot in the global event stream.
//
// A checkpoint is the concatenation of six zero-padded decimal fields in a
// fixed order: blockTimestamp, chainId, blockNumber, transactionIndex,
// eventType, eventIndex. Field widths are chosen so that string comparison
// of the encoded form always agrees with the numeric comparison of the
// decoded tuple, and so that no field can overflow within 2^63 of its unit
// (blocks, transactions, events).
package checkpoint

import (
	"fmt"
	"strconv"
	"strings"
)

// EventType codes. These must stay stable across writer and reader; the
// source system this spec was distilled from reused one code for two event
// kinds, which the implementer must not repeat. Each kind gets its own code.
const (
	EventTypeBlock       EventType = 1
	EventTypeTransaction EventType = 2
	EventTypeLog         EventType = 3
	EventTypeTrace       EventType = 4
)

// EventType identifies the kind of chain data an event was derived from.
type EventType uint8

func (t EventType) String() string {
	switch t {
	case EventTypeBlock:
		return "block"
	case EventTypeTransaction:
		return "transaction"
	case EventTypeLog:
		return "log"
	case EventTypeTrace:
		return "trace"
	default:
		return "unknown"
	}
}

const (
	widthTimestamp        = 10
	widthChainID          = 16
	widthBlockNumber      = 16
	widthTransactionIndex = 16
	widthEventType        = 1
	widthEventIndex       = 16

	totalWidth = widthTimestamp + widthChainID + widthBlockNumber +
		widthTransactionIndex + widthEventType + widthEventIndex
)

// ZeroIndex is used for events that have no natural intra-transaction index
// (blocks). Its value equals the first log/trace's index 0; the event type
// field, not the index, tells such events apart.
const ZeroIndex = 0

// Parts is the decoded tuple backing a Checkpoint.
type Parts struct {
	BlockTimestamp   uint64
	ChainID          uint64
	BlockNumber      uint64
	TransactionIndex uint64
	EventType        EventType
	EventIndex       uint64
}

// Checkpoint is the encoded, lexicographically comparable token.
type Checkpoint string

// MaxCheckpoint is the all-9s sentinel: greater than any real checkpoint.
var MaxCheckpoint = Checkpoint(strings.Repeat("9", totalWidth))

// ZeroCheckpoint is the all-0s sentinel: less than any real checkpoint.
var ZeroCheckpoint = Checkpoint(strings.Repeat("0", totalWidth))

// Encode renders parts into the fixed-width checkpoint string.
func Encode(p Parts) Checkpoint {
	var b strings.Builder
	b.Grow(totalWidth)
	writePadded(&b, p.BlockTimestamp, widthTimestamp)
	writePadded(&b, p.ChainID, widthChainID)
	writePadded(&b, p.BlockNumber, widthBlockNumber)
	writePadded(&b, p.TransactionIndex, widthTransactionIndex)
	writePadded(&b, uint64(p.EventType), widthEventType)
	writePadded(&b, p.EventIndex, widthEventIndex)
	return Checkpoint(b.String())
}

func writePadded(b *strings.Builder, v uint64, width int) {
	s := strconv.FormatUint(v, 10)
	for i := len(s); i < width; i++ {
		b.WriteByte('0')
	}
	b.WriteString(s)
}

// Decode parses a checkpoint string back into its parts. It returns an error
// if the string is not exactly totalWidth decimal digits.
func Decode(c Checkpoint) (Parts, error) {
	s := string(c)
	if len(s) != totalWidth {
		return Parts{}, fmt.Errorf("checkpoint: expected %d characters, got %d", totalWidth, len(s))
	}

	offset := 0
	next := func(width int) (uint64, error) {
		field := s[offset : offset+width]
		offset += width
		v, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("checkpoint: invalid field %q: %w", field, err)
		}
		return v, nil
	}

	ts, err := next(widthTimestamp)
	if err != nil {
		return Parts{}, err
	}
	chainID, err := next(widthChainID)
	if err != nil {
		return Parts{}, err
	}
	blockNumber, err := next(widthBlockNumber)
	if err != nil {
		return Parts{}, err
	}
	txIndex, err := next(widthTransactionIndex)
	if err != nil {
		return Parts{}, err
	}
	eventType, err := next(widthEventType)
	if err != nil {
		return Parts{}, err
	}
	eventIndex, err := next(widthEventIndex)
	if err != nil {
		return Parts{}, err
	}

	return Parts{
		BlockTimestamp:   ts,
		ChainID:          chainID,
		BlockNumber:      blockNumber,
		TransactionIndex: txIndex,
		EventType:        EventType(eventType),
		EventIndex:       eventIndex,
	}, nil
}

// Less reports whether a sorts strictly before b. Because Encode produces
// fixed-width zero-padded digit strings, this is identical to a plain string
// comparison; Less exists so call sites don't need to know that.
func Less(a, b Checkpoint) bool {
	return a < b
}

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func Compare(a, b Checkpoint) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AtMax returns the checkpoint for (blockTimestamp, chainID, blockNumber) at
// the maximum transactionIndex/eventType/eventIndex, used by splitEvents to
// derive a block-level boundary checkpoint that sorts after every event the
// block could ever produce.
func AtMax(blockTimestamp, chainID, blockNumber uint64) Checkpoint {
	return Encode(Parts{
		BlockTimestamp:   blockTimestamp,
		ChainID:          chainID,
		BlockNumber:      blockNumber,
		TransactionIndex: repUint(widthTransactionIndex),
		EventType:        EventType(repUint(widthEventType)),
		EventIndex:       repUint(widthEventIndex),
	})
}

func repUint(width int) uint64 {
	v, _ := strconv.ParseUint(strings.Repeat("9", width), 10, 64)
	return v
}
