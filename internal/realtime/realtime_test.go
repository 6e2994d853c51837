package realtime_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/chainmodel"
	"github.com/0xkanth/evmindexer/internal/realtime"
)

type fakeSource struct {
	byNumber map[uint64]chainmodel.LightBlock
	head     uint64
}

func newFakeSource() *fakeSource {
	return &fakeSource{byNumber: map[uint64]chainmodel.LightBlock{}}
}

func (f *fakeSource) set(b chainmodel.LightBlock) {
	f.byNumber[b.Number] = b
	if b.Number > f.head || len(f.byNumber) == 1 {
		f.head = b.Number
	}
}

func (f *fakeSource) LatestHeader(ctx context.Context) (chainmodel.LightBlock, error) {
	return f.byNumber[f.head], nil
}

func (f *fakeSource) HeaderByNumber(ctx context.Context, number uint64) (chainmodel.LightBlock, error) {
	return f.byNumber[number], nil
}

func block(n uint64, hash, parent byte) chainmodel.LightBlock {
	return chainmodel.LightBlock{Number: n, Hash: common.Hash{hash}, ParentHash: common.Hash{parent}, Timestamp: 1000 + n}
}

func TestPollSeedsOnFirstCall(t *testing.T) {
	src := newFakeSource()
	src.set(block(10, 1, 0))

	svc := realtime.New(1, 100, src, zerolog.Nop())
	res, err := svc.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, realtime.Linked, res.Kind)
	require.Len(t, res.Appended, 1)
}

func TestPollIdentityWhenHeadUnchanged(t *testing.T) {
	src := newFakeSource()
	src.set(block(10, 1, 0))
	svc := realtime.New(1, 100, src, zerolog.Nop())
	_, err := svc.Poll(context.Background())
	require.NoError(t, err)

	res, err := svc.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, realtime.Identity, res.Kind)
	require.Empty(t, res.Appended)
}

func TestPollLinkedAppendsOneBlock(t *testing.T) {
	src := newFakeSource()
	src.set(block(10, 1, 0))
	svc := realtime.New(1, 100, src, zerolog.Nop())
	_, err := svc.Poll(context.Background())
	require.NoError(t, err)

	src.set(block(11, 2, 1))
	res, err := svc.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, realtime.Linked, res.Kind)
	require.Equal(t, uint64(11), res.Appended[0].Number)
}

func TestPollGapFillsMissingBlocks(t *testing.T) {
	src := newFakeSource()
	src.set(block(10, 1, 0))
	svc := realtime.New(1, 100, src, zerolog.Nop())
	_, err := svc.Poll(context.Background())
	require.NoError(t, err)

	src.set(block(11, 2, 1))
	src.set(block(12, 3, 2))
	src.set(block(13, 4, 3))
	res, err := svc.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, realtime.Gap, res.Kind)
	require.Len(t, res.Appended, 3)
	require.Equal(t, uint64(13), svc.LocalChain().Blocks()[len(svc.LocalChain().Blocks())-1].Number)
}

func TestPollDetectsReorg(t *testing.T) {
	src := newFakeSource()
	src.set(block(10, 1, 0))
	svc := realtime.New(1, 100, src, zerolog.Nop())
	_, err := svc.Poll(context.Background())
	require.NoError(t, err)

	src.set(block(11, 2, 1))
	_, err = svc.Poll(context.Background())
	require.NoError(t, err)

	// Remote reorganizes block 11 onto a different fork (new hash 0x99,
	// still correctly parented on block 10's hash).
	src.set(block(11, 0x99, 1))
	res, err := svc.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, realtime.Reorg, res.Kind)
	require.Equal(t, uint64(11), res.ReorgFrom)

	tip, ok := svc.LocalChain().Tip()
	require.True(t, ok)
	require.Equal(t, common.Hash{0x99}, tip.Hash)
}

func TestPollFinalizesOnceTipClearsDoubleFinalityThreshold(t *testing.T) {
	src := newFakeSource()
	src.set(block(10, 1, 0))
	svc := realtime.New(1, 2, src, zerolog.Nop())
	_, err := svc.Poll(context.Background())
	require.NoError(t, err)
	svc.SeedFinalized(10)

	// finality=2: finalization only fires once tip >= finalized+2*finality = 14.
	for n := uint64(11); n <= 13; n++ {
		src.set(block(n, byte(n), byte(n-1)))
		res, err := svc.Poll(context.Background())
		require.NoError(t, err)
		require.False(t, res.Finalized, "block %d should not finalize yet", n)
	}

	src.set(block(14, 14, 13))
	res, err := svc.Poll(context.Background())
	require.NoError(t, err)
	require.True(t, res.Finalized)
	require.Equal(t, uint64(11), res.FinalizedFrom)
	require.Equal(t, uint64(12), res.FinalizedBlock.Number)

	finalized, ok := svc.FinalizedBlockNumber()
	require.True(t, ok)
	require.Equal(t, uint64(12), finalized)

	_, ok = svc.LocalChain().FindByNumber(12)
	require.False(t, ok, "finalized blocks are pruned from the local chain")
	_, ok = svc.LocalChain().FindByNumber(13)
	require.True(t, ok)
}

func TestPollWithoutSeedFinalizedNeverFinalizes(t *testing.T) {
	src := newFakeSource()
	src.set(block(1, 1, 0))
	svc := realtime.New(1, 2, src, zerolog.Nop())
	_, err := svc.Poll(context.Background())
	require.NoError(t, err)

	for n := uint64(2); n <= 10; n++ {
		src.set(block(n, byte(n), byte(n-1)))
		res, err := svc.Poll(context.Background())
		require.NoError(t, err)
		require.False(t, res.Finalized)
	}

	_, ok := svc.FinalizedBlockNumber()
	require.False(t, ok)
}

func TestPollPrunesBeyondFinality(t *testing.T) {
	src := newFakeSource()
	src.set(block(1, 1, 0))
	svc := realtime.New(1, 2, src, zerolog.Nop())
	_, err := svc.Poll(context.Background())
	require.NoError(t, err)

	for n := uint64(2); n <= 5; n++ {
		src.set(block(n, byte(n), byte(n-1)))
		_, err := svc.Poll(context.Background())
		require.NoError(t, err)
	}

	// finality=2, tip=5: blocks with number <= 5-2=3 should have been pruned.
	_, ok := svc.LocalChain().FindByNumber(1)
	require.False(t, ok)
	_, ok = svc.LocalChain().FindByNumber(5)
	require.True(t, ok)
}
