package pipeline

import (
	"github.com/0xkanth/evmindexer/internal/chainmodel"
	"github.com/0xkanth/evmindexer/internal/checkpoint"
)

// Chunk is one contiguous run of decoded events that all belong to the same
// block, plus the upper-bound checkpoint that sorts after every event that
// block could ever produce (checkpoint.AtMax). cmd/indexer runs each chunk
// in its own indexing-store transaction and commits it when the chunk
// completes; the sync cursor is persisted once per batch, not per chunk, so
// a crash mid-batch replays the whole batch.
type Chunk struct {
	ChainID     uint64
	BlockNumber uint64
	Through     checkpoint.Checkpoint
	Events      []chainmodel.Event
}

// SplitEvents implements spec §4.3 splitEvents: regroups a checkpoint-sorted
// decoded event slice into per-block chunks suitable for incremental commit.
// Events must already be sorted ascending by Checkpoint (BuildEvents
// guarantees this); SplitEvents does not re-sort.
func SplitEvents(events []chainmodel.Event) ([]Chunk, error) {
	var chunks []Chunk
	for _, e := range events {
		parts, err := checkpoint.Decode(e.Checkpoint)
		if err != nil {
			return nil, err
		}
		if n := len(chunks); n > 0 && chunks[n-1].ChainID == e.ChainID && chunks[n-1].BlockNumber == parts.BlockNumber {
			chunks[n-1].Events = append(chunks[n-1].Events, e)
			continue
		}
		chunks = append(chunks, Chunk{
			ChainID:     e.ChainID,
			BlockNumber: parts.BlockNumber,
			Through:     checkpoint.AtMax(parts.BlockTimestamp, e.ChainID, parts.BlockNumber),
			Events:      []chainmodel.Event{e},
		})
	}
	return chunks, nil
}
