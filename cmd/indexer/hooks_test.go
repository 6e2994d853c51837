package main

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/config"
	"github.com/0xkanth/evmindexer/internal/filter"
	"github.com/0xkanth/evmindexer/internal/registry"
)

func TestContractAddressesResolvesConfiguredHexAddresses(t *testing.T) {
	chainCfg := config.ChainConfig{
		ChainID: 137,
		Contracts: map[string]string{
			"ConditionalTokens": "0x4D97DCd97eC945f40cF65F87097ACe5EA0476045",
		},
	}

	addrs := contractAddresses(chainCfg)
	require.Equal(t, common.HexToAddress("0x4D97DCd97eC945f40cF65F87097ACe5EA0476045"), addrs["ConditionalTokens"])
}

func TestContractAddressesEmptyWithoutConfig(t *testing.T) {
	addrs := contractAddresses(config.ChainConfig{ChainID: 1})
	require.Empty(t, addrs)
}

func TestBuildFiltersMatchesEveryConditionalTokensEventOnce(t *testing.T) {
	chainCfg := config.ChainConfig{ChainID: 137, StartBlock: 100}
	contracts := map[string]common.Address{
		"ConditionalTokens": common.HexToAddress("0x4D97DCd97eC945f40cF65F87097ACe5EA0476045"),
	}

	set := buildFilters(chainCfg, contracts)
	require.Equal(t, len(conditionalTokensABI.Events), len(set.Logs))

	for _, f := range set.Logs {
		require.Equal(t, filter.KindLog, f.Kind)
		require.Equal(t, uint64(137), f.ChainID)
		require.Equal(t, uint64(100), f.FromBlock)
		require.Contains(t, f.Handler, "ConditionalTokens:")
		require.Len(t, f.Topics[0], 1)
	}
}

func TestBuildFiltersEmptyWithoutConditionalTokensAddress(t *testing.T) {
	set := buildFilters(config.ChainConfig{ChainID: 137}, map[string]common.Address{})
	require.Empty(t, set.Logs)
}

func TestBuildABIRegistryRegistersEveryConditionalTokensEvent(t *testing.T) {
	reg := buildABIRegistry()
	require.NotNil(t, reg)
	_ = reg
}

func TestRegisterHandlersInstallsOnePerEvent(t *testing.T) {
	reg := registry.New()
	registerHandlers(reg)

	for _, ev := range conditionalTokensABI.Events {
		_, ok := reg.Handler("ConditionalTokens:" + ev.Name)
		require.True(t, ok, "expected handler registered for %s", ev.Name)
	}
}

func TestChainLabelFormatsChainID(t *testing.T) {
	require.Equal(t, "137", chainLabel(137))
}
