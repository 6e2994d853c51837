package chainmodel_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/chainmodel"
)

func block(number uint64, hash, parent byte) chainmodel.LightBlock {
	return chainmodel.LightBlock{
		Number:     number,
		Hash:       common.Hash{hash},
		ParentHash: common.Hash{parent},
		Timestamp:  1700000000 + number,
	}
}

func TestAppendEnforcesContiguity(t *testing.T) {
	c := chainmodel.NewLocalChain()
	require.NoError(t, c.Append(block(10, 1, 0)))
	require.NoError(t, c.Append(block(11, 2, 1)))

	err := c.Append(block(13, 3, 2))
	require.Error(t, err, "skipping a block number must be rejected")
}

func TestAppendEnforcesParentLinkage(t *testing.T) {
	c := chainmodel.NewLocalChain()
	require.NoError(t, c.Append(block(10, 1, 0)))

	err := c.Append(block(11, 2, 0xff))
	require.Error(t, err, "parent hash must match the current tip's hash")
}

func TestPopTip(t *testing.T) {
	c := chainmodel.NewLocalChain()
	require.NoError(t, c.Append(block(10, 1, 0)))
	require.NoError(t, c.Append(block(11, 2, 1)))

	tip, ok := c.PopTip()
	require.True(t, ok)
	require.Equal(t, uint64(11), tip.Number)
	require.Equal(t, 1, c.Len())

	tip, ok = c.Tip()
	require.True(t, ok)
	require.Equal(t, uint64(10), tip.Number)
}

func TestPopTipOnEmptyChain(t *testing.T) {
	c := chainmodel.NewLocalChain()
	_, ok := c.PopTip()
	require.False(t, ok)
}

func TestTruncateFrom(t *testing.T) {
	c := chainmodel.NewLocalChain()
	require.NoError(t, c.Append(block(10, 1, 0)))
	require.NoError(t, c.Append(block(11, 2, 1)))
	require.NoError(t, c.Append(block(12, 3, 2)))

	c.TruncateFrom(11)
	require.Equal(t, 1, c.Len())
	tip, _ := c.Tip()
	require.Equal(t, uint64(10), tip.Number)
}

func TestPruneUpTo(t *testing.T) {
	c := chainmodel.NewLocalChain()
	require.NoError(t, c.Append(block(10, 1, 0)))
	require.NoError(t, c.Append(block(11, 2, 1)))
	require.NoError(t, c.Append(block(12, 3, 2)))

	c.PruneUpTo(11)
	require.Equal(t, 1, c.Len())
	_, ok := c.FindByNumber(10)
	require.False(t, ok)
	_, ok = c.FindByNumber(11)
	require.False(t, ok)
	_, ok = c.FindByNumber(12)
	require.True(t, ok)
}

func TestFindByNumber(t *testing.T) {
	c := chainmodel.NewLocalChain()
	require.NoError(t, c.Append(block(10, 1, 0)))

	_, ok := c.FindByNumber(99)
	require.False(t, ok)

	found, ok := c.FindByNumber(10)
	require.True(t, ok)
	require.Equal(t, common.Hash{1}, found.Hash)
}

func TestEmpty(t *testing.T) {
	c := chainmodel.NewLocalChain()
	require.True(t, c.Empty())
	require.NoError(t, c.Append(block(10, 1, 0)))
	require.False(t, c.Empty())
}

func TestEventCountInc(t *testing.T) {
	counts := chainmodel.EventCount{}
	require.Equal(t, 1, counts.Inc("Pool:Swap"))
	require.Equal(t, 2, counts.Inc("Pool:Swap"))
	require.Equal(t, 1, counts.Inc("Pool:Mint"))
}
