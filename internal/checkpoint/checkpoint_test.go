package checkpoint_test

import (
	"testing"

	"github.com/0xkanth/evmindexer/internal/checkpoint"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	parts := checkpoint.Parts{
		BlockTimestamp:   1700000000,
		ChainID:          137,
		BlockNumber:      55_000_111,
		TransactionIndex: 12,
		EventType:        checkpoint.EventTypeLog,
		EventIndex:       3,
	}

	encoded := checkpoint.Encode(parts)
	decoded, err := checkpoint.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, parts, decoded)
}

func TestOrderingMatchesTupleOrder(t *testing.T) {
	earlier := checkpoint.Encode(checkpoint.Parts{BlockTimestamp: 100, ChainID: 1, BlockNumber: 1})
	later := checkpoint.Encode(checkpoint.Parts{BlockTimestamp: 100, ChainID: 1, BlockNumber: 2})
	require.True(t, checkpoint.Less(earlier, later))
	require.Equal(t, -1, checkpoint.Compare(earlier, later))
	require.Equal(t, 1, checkpoint.Compare(later, earlier))
	require.Equal(t, 0, checkpoint.Compare(later, later))
}

func TestEventTypeBreaksTiesWithinSameBlockAndTx(t *testing.T) {
	// Same timestamp, chain, block, tx index: eventType then eventIndex decide order.
	a := checkpoint.Encode(checkpoint.Parts{EventType: checkpoint.EventTypeLog, EventIndex: 5})
	b := checkpoint.Encode(checkpoint.Parts{EventType: checkpoint.EventTypeTrace, EventIndex: 0})
	require.True(t, checkpoint.Less(a, b), "log(3) sorts before trace(4) regardless of index")
}

func TestSentinels(t *testing.T) {
	mid := checkpoint.Encode(checkpoint.Parts{BlockTimestamp: 1, ChainID: 1, BlockNumber: 1, EventIndex: 1})
	require.True(t, checkpoint.Less(checkpoint.ZeroCheckpoint, mid))
	require.True(t, checkpoint.Less(mid, checkpoint.MaxCheckpoint))
}

func TestAtMaxSortsAfterAnyEventInTheBlock(t *testing.T) {
	boundary := checkpoint.AtMax(100, 1, 50)
	last := checkpoint.Encode(checkpoint.Parts{
		BlockTimestamp: 100, ChainID: 1, BlockNumber: 50,
		TransactionIndex: 999, EventType: checkpoint.EventTypeTrace, EventIndex: 999,
	})
	require.True(t, checkpoint.Less(last, boundary))
}

func TestDecodeRejectsWrongWidth(t *testing.T) {
	_, err := checkpoint.Decode("short")
	require.Error(t, err)
}
