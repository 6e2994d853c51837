package syncstore_test

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/filter"
	"github.com/0xkanth/evmindexer/internal/syncstore"
)

func openTempStore(t *testing.T) *syncstore.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sync.db")
	s, err := syncstore.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestBlockRoundTrip(t *testing.T) {
	s := openTempStore(t)

	b := syncstore.BlockRecord{Number: 100, Hash: "0xabc", ParentHash: "0xdef", Timestamp: 1700000000}
	require.NoError(t, s.PutBlock(137, b))

	got, ok, err := s.GetBlock(137, 100)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, b, got)

	_, ok, err = s.GetBlock(137, 101)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReceiptRoundTrip(t *testing.T) {
	s := openTempStore(t)

	r := syncstore.ReceiptRecord{TxHash: "0x1", Status: 1}
	require.NoError(t, s.PutReceipt(1, r))

	got, ok, err := s.GetReceipt(1, "0x1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, r, got)
}

func TestFactoryChildDiscovery(t *testing.T) {
	s := openTempStore(t)

	require.NoError(t, s.PutFactoryChild(1, "pools", "0xchild", 500))

	n, ok, err := s.DiscoveredAt(1, "pools", "0xchild")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(500), n)

	_, ok, err = s.DiscoveredAt(1, "pools", "0xother")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestChildAddressIndexAdaptsFilterInterface(t *testing.T) {
	s := openTempStore(t)
	require.NoError(t, s.PutFactoryChild(1, "pools", common.HexToAddress("0xchild").Hex(), 500))

	var idx filter.ChildAddressIndex = s.ChildAddressIndex(1)

	n, ok := idx.DiscoveredAt("pools", common.HexToAddress("0xchild"))
	require.True(t, ok)
	require.Equal(t, uint64(500), n)

	_, ok = idx.DiscoveredAt("pools", common.HexToAddress("0xother"))
	require.False(t, ok)

	otherChain := s.ChildAddressIndex(2)
	_, ok = otherChain.DiscoveredAt("pools", common.HexToAddress("0xchild"))
	require.False(t, ok, "discovery must be scoped per chain")
}

func TestRPCCacheRoundTrip(t *testing.T) {
	s := openTempStore(t)

	require.NoError(t, s.PutRPCCache("key1", []byte("result-bytes")))

	got, ok, err := s.GetRPCCache("key1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("result-bytes"), got)

	_, ok, err = s.GetRPCCache("missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCursorPersistsPerChain(t *testing.T) {
	s := openTempStore(t)

	c := syncstore.Cursor{ChainID: 137, LastBlockNumber: 9000, LastCheckpoint: "abc", IsRealtime: true}
	require.NoError(t, s.PutCursor(c))

	got, ok, err := s.GetCursor(137)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, c, got)

	_, ok, err = s.GetCursor(1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFinalizedPointerPersistsPerChain(t *testing.T) {
	s := openTempStore(t)

	_, ok, err := s.GetFinalized(137)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.PutFinalized(137, 9000))
	n, ok, err := s.GetFinalized(137)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(9000), n)

	_, ok, err = s.GetFinalized(1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPutIntervalDoesNotError(t *testing.T) {
	s := openTempStore(t)
	require.NoError(t, s.PutInterval(137, "log", 9001, 9128))
}
