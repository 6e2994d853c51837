package runtime

import (
	"github.com/0xkanth/evmindexer/internal/chainmodel"
	"github.com/0xkanth/evmindexer/internal/checkpoint"
)

// MergeOmnichain performs a k-way merge of independently-ordered per-chain
// event streams into a single globally checkpoint-ordered stream, per spec
// §4.6's omnichain ordering regime. Each input slice must already be
// ascending by Checkpoint within its own chain (the pipeline guarantees
// this per-chain order); the merge never reorders events within a chain.
//
// Under the multichain/experimental_isolated regime this function is not
// used at all: each chain's runtime instance consumes its own stream
// independently, and progress is computed and minimized per chain instead.
func MergeOmnichain(perChain map[uint64][]chainmodel.Event) []chainmodel.Event {
	type cursor struct {
		events []chainmodel.Event
		pos    int
	}

	cursors := make([]*cursor, 0, len(perChain))
	total := 0
	for _, events := range perChain {
		if len(events) == 0 {
			continue
		}
		cursors = append(cursors, &cursor{events: events})
		total += len(events)
	}

	merged := make([]chainmodel.Event, 0, total)
	for {
		best := -1
		for i, c := range cursors {
			if c.pos >= len(c.events) {
				continue
			}
			if best == -1 || checkpoint.Less(c.events[c.pos].Checkpoint, cursors[best].events[cursors[best].pos].Checkpoint) {
				best = i
			}
		}
		if best == -1 {
			break
		}
		merged = append(merged, cursors[best].events[cursors[best].pos])
		cursors[best].pos++
	}
	return merged
}
