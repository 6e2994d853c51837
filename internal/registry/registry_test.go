package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/chainmodel"
	"github.com/0xkanth/evmindexer/internal/registry"
)

func TestRegistryOnAndHandler(t *testing.T) {
	r := registry.New()
	called := false
	r.On("Pool:Swap", func(ctx context.Context, event chainmodel.Event, rc *registry.Context) error {
		called = true
		return nil
	})

	fn, ok := r.Handler("Pool:Swap")
	require.True(t, ok)
	require.NoError(t, fn(context.Background(), chainmodel.Event{}, &registry.Context{}))
	require.True(t, called)

	_, ok = r.Handler("Pool:Missing")
	require.False(t, ok)
}

func TestRegistrySetupHandlersTracksChains(t *testing.T) {
	r := registry.New()
	r.OnSetup("Pool", []uint64{1, 137}, func(ctx context.Context, rc *registry.Context) error {
		return nil
	})

	entries := r.SetupHandlers()
	entry, ok := entries["Pool"]
	require.True(t, ok)
	require.Equal(t, []uint64{1, 137}, entry.Chains)
	require.NotNil(t, entry.Fn)
}
