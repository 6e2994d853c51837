package main

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/config"
	"github.com/0xkanth/evmindexer/internal/filter"
	"github.com/0xkanth/evmindexer/internal/pipeline"
	"github.com/0xkanth/evmindexer/internal/syncstore"
)

func openTempSyncStore(t *testing.T) *syncstore.Store {
	t.Helper()
	s, err := syncstore.Open(filepath.Join(t.TempDir(), "sync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestFinalizedIntervalKindsListsOnlyConfiguredKinds(t *testing.T) {
	set := filter.NewSet(1, []filter.Filter{
		{ChainID: 1, Kind: filter.KindLog},
		{ChainID: 1, Kind: filter.KindBlock},
	})
	require.ElementsMatch(t, []string{"log", "block"}, finalizedIntervalKinds(set))
}

func TestFinalizedIntervalKindsEmptyForEmptySet(t *testing.T) {
	require.Empty(t, finalizedIntervalKinds(filter.Set{}))
}

func TestDiscoverFactoryChildrenRecordsNewChild(t *testing.T) {
	store := openTempSyncStore(t)
	factoryAddr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	childAddr := common.HexToAddress("0x2222222222222222222222222222222222222222")
	sig := common.HexToHash("0xaaaa")

	set := filter.NewSet(137, []filter.Filter{
		{
			ChainID:           137,
			Kind:              filter.KindLog,
			Addresses:         []common.Address{factoryAddr},
			Topics:            [4][]common.Hash{{sig}},
			FactorySource:     "pools",
			ChildAddressTopic: 1,
		},
	})

	env := &chainEnv{
		runnerConfig: runnerConfig{chainCfg: config.ChainConfig{ChainID: 137}, syncStore: store},
		set:          set,
		childIndex:   store.ChildAddressIndex(137),
	}

	batch := pipeline.Batch{
		Logs: []types.Log{
			{
				Address:     factoryAddr,
				Topics:      []common.Hash{sig, childAddr.Hash()},
				BlockNumber: 500,
			},
		},
	}

	require.NoError(t, discoverFactoryChildren(env, batch))

	n, ok, err := store.DiscoveredAt(137, "pools", childAddr.Hex())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(500), n)
}

func TestDiscoverFactoryChildrenNoopWithoutFactorySources(t *testing.T) {
	store := openTempSyncStore(t)
	env := &chainEnv{
		runnerConfig: runnerConfig{chainCfg: config.ChainConfig{ChainID: 1}, syncStore: store},
		set:          filter.NewSet(1, []filter.Filter{{ChainID: 1, Kind: filter.KindLog}}),
	}

	batch := pipeline.Batch{Logs: []types.Log{{BlockNumber: 1}}}
	require.NoError(t, discoverFactoryChildren(env, batch))
}
