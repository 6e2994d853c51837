package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/eventbus"
)

func TestChainLabelFormatsChainID(t *testing.T) {
	require.Equal(t, "137", chainLabel(137))
}

func TestNullableReorgFromOnlySetForReorgEvents(t *testing.T) {
	require.Nil(t, nullableReorgFrom(eventbus.Event{Type: eventbus.Checkpoint, ReorgFrom: 10}))

	ev := eventbus.Event{Type: eventbus.Reorg, ReorgFrom: 42}
	got := nullableReorgFrom(ev)
	require.NotNil(t, got)
	require.Equal(t, uint64(42), *got)
}
