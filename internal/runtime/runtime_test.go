package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/chainmodel"
	"github.com/0xkanth/evmindexer/internal/checkpoint"
	"github.com/0xkanth/evmindexer/internal/progress"
	"github.com/0xkanth/evmindexer/internal/registry"
	"github.com/0xkanth/evmindexer/internal/runtime"
	"github.com/0xkanth/evmindexer/internal/store"
)

// fakeQB is a minimal in-memory store.QueryBuilder, just enough to exercise
// Cache.Find/Insert for narrowing tests without a live Postgres connection.
type fakeQB struct {
	rows map[string]map[string]any
}

func newFakeQB() *fakeQB { return &fakeQB{rows: map[string]map[string]any{}} }

func (f *fakeQB) Select(ctx context.Context, table *store.TableSpec, keyPred map[string]any) (map[string]any, error) {
	row, ok := f.rows[keyPred["id"].(string)]
	if !ok {
		return nil, nil
	}
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out, nil
}

func (f *fakeQB) Insert(ctx context.Context, table *store.TableSpec, rows []map[string]any, opts store.InsertOptions) ([]map[string]any, error) {
	results := make([]map[string]any, len(rows))
	for i, row := range rows {
		f.rows[row["id"].(string)] = row
		results[i] = row
	}
	return results, nil
}

func (f *fakeQB) Update(ctx context.Context, table *store.TableSpec, keyPred map[string]any, patch map[string]any) (map[string]any, error) {
	row := f.rows[keyPred["id"].(string)]
	for k, v := range patch {
		row[k] = v
	}
	return row, nil
}

func (f *fakeQB) Delete(ctx context.Context, table *store.TableSpec, keyPred map[string]any) (bool, error) {
	id := keyPred["id"].(string)
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

func (f *fakeQB) Raw(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	return nil, nil
}

func tableSpec() *store.TableSpec {
	t := store.NewTable("pools")
	t.Column("id", store.Hex).PrimaryKey()
	t.Column("reserve0", store.BigInt).NotNull()
	t.Column("reserve1", store.BigInt).NotNull()
	return t
}

func newEvent(chainID uint64, handler string, blockNumber uint64, idx int) chainmodel.Event {
	cp := checkpoint.Encode(checkpoint.Parts{
		BlockTimestamp: blockNumber,
		ChainID:        chainID,
		BlockNumber:    blockNumber,
		EventType:      checkpoint.EventTypeLog,
		EventIndex:     uint64(idx),
	})
	return chainmodel.Event{
		RawEvent: chainmodel.RawEvent{
			ChainID:     chainID,
			HandlerName: handler,
			Checkpoint:  cp,
			Block:       chainmodel.LightBlock{Number: blockNumber, Timestamp: 1700000000 + blockNumber},
			Log:         &types.Log{Index: uint(idx)},
		},
	}
}

func TestProcessRealtimeEventsDispatchesInOrder(t *testing.T) {
	reg := registry.New()
	var seen []uint64
	reg.On("Pool:Swap", func(ctx context.Context, event chainmodel.Event, rc *registry.Context) error {
		seen = append(seen, event.Block.Number)
		return nil
	})

	rt := runtime.New(runtime.Config{Registry: reg})
	events := []chainmodel.Event{
		newEvent(1, "Pool:Swap", 10, 0),
		newEvent(1, "Pool:Swap", 11, 0),
		newEvent(1, "Pool:Swap", 12, 0),
	}

	rc := &registry.Context{ChainID: 1}
	require.NoError(t, rt.ProcessRealtimeEvents(context.Background(), events, rc))
	require.Equal(t, []uint64{10, 11, 12}, seen)
	require.Equal(t, 3, rt.EventCounts()["Pool:Swap"])
}

func TestProcessRealtimeEventsUnknownHandlerErrors(t *testing.T) {
	rt := runtime.New(runtime.Config{Registry: registry.New()})
	events := []chainmodel.Event{newEvent(1, "Pool:Missing", 1, 0)}
	err := rt.ProcessRealtimeEvents(context.Background(), events, &registry.Context{})
	require.Error(t, err)
}

func TestDispatchWrapsHandlerErrorWithMeta(t *testing.T) {
	reg := registry.New()
	reg.On("Pool:Swap", func(ctx context.Context, event chainmodel.Event, rc *registry.Context) error {
		return &progress.RetryableError{Err: errors.New("rpc timeout")}
	})

	rt := runtime.New(runtime.Config{Registry: reg})
	events := []chainmodel.Event{newEvent(7, "Pool:Swap", 55, 2)}

	err := rt.ProcessRealtimeEvents(context.Background(), events, &registry.Context{})
	require.Error(t, err)

	var herr *progress.HandlerError
	require.ErrorAs(t, err, &herr)
	require.Equal(t, "Pool:Swap", herr.Meta.HandlerName)
	require.Equal(t, uint64(55), herr.Meta.BlockNumber)
	require.NotNil(t, herr.Meta.LogIndex)
	require.Equal(t, progress.Retryable, progress.Classify(herr.Err))
}

func TestFatalHandlerErrorInvokesOnFatalError(t *testing.T) {
	reg := registry.New()
	reg.On("Pool:Swap", func(ctx context.Context, event chainmodel.Event, rc *registry.Context) error {
		return &progress.FatalError{Reason: "unrecoverable reorg"}
	})

	var called bool
	rt := runtime.New(runtime.Config{
		Registry: reg,
		OnFatalError: func(err *progress.FatalError) {
			called = true
		},
	})

	events := []chainmodel.Event{newEvent(1, "Pool:Swap", 1, 0)}
	err := rt.ProcessRealtimeEvents(context.Background(), events, &registry.Context{})
	require.Error(t, err)
	require.True(t, called)
}

func TestProcessSetupEventsRunsOncePerConfiguredChain(t *testing.T) {
	reg := registry.New()
	var chains []uint64
	reg.OnSetup("Pool", []uint64{1, 137}, func(ctx context.Context, rc *registry.Context) error {
		chains = append(chains, rc.ChainID)
		require.NotEmpty(t, rc.Checkpoint)
		return nil
	})

	rt := runtime.New(runtime.Config{Registry: reg})
	err := rt.ProcessSetupEvents(context.Background(), map[uint64]runtime.SetupContext{
		1:   {ChainID: 1, StartBlock: 100},
		137: {ChainID: 137, StartBlock: 200},
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []uint64{1, 137}, chains)
}

func TestProcessHistoricalEventsNarrowsIncludeAfterThreshold(t *testing.T) {
	reg := registry.New()
	table := tableSpec()
	qb := newFakeQB()

	reg.On("Pool:Sync", func(ctx context.Context, event chainmodel.Event, rc *registry.Context) error {
		row, err := rc.DB.Cache.Insert(context.Background(), table, map[string]any{
			"id":       "0xpool",
			"reserve0": "1",
			"reserve1": "2",
		}, store.InsertOptions{OnConflictDoNothing: true})
		if err != nil {
			return err
		}
		if row != nil {
			_, _ = row.Get("reserve0")
		}
		return nil
	})

	rt := runtime.New(runtime.Config{Registry: reg, NarrowThreshold: 2})
	cache := store.NewCache(qb, nil)

	events := make([]chainmodel.Event, 3)
	for i := range events {
		events[i] = newEvent(1, "Pool:Sync", uint64(i+1), 0)
	}

	rc := &registry.Context{ChainID: 1, DB: &store.Tx{Cache: cache}}
	require.NoError(t, rt.ProcessHistoricalEvents(context.Background(), events, rc, cache))

	// Only reserve0 was accessed before the threshold, so rows cached after
	// narrowing reject reserve1.
	row, err := cache.Find(context.Background(), table, map[string]any{"id": "0xpool"})
	require.NoError(t, err)
	require.NotNil(t, row)
	_, err = row.Get("reserve1")
	var accessErr *store.InvalidEventAccessError
	require.ErrorAs(t, err, &accessErr)
}

func TestMergeOmnichainInterleavesByCheckpoint(t *testing.T) {
	chainA := []chainmodel.Event{newEvent(1, "A", 10, 0), newEvent(1, "A", 30, 0)}
	chainB := []chainmodel.Event{newEvent(2, "B", 20, 0), newEvent(2, "B", 40, 0)}

	merged := runtime.MergeOmnichain(map[uint64][]chainmodel.Event{1: chainA, 2: chainB})
	require.Len(t, merged, 4)

	var numbers []uint64
	for _, e := range merged {
		numbers = append(numbers, e.Block.Number)
	}
	require.Equal(t, []uint64{10, 20, 30, 40}, numbers)
}

func TestKillStopsFurtherDispatch(t *testing.T) {
	reg := registry.New()
	var count int
	reg.On("Pool:Swap", func(ctx context.Context, event chainmodel.Event, rc *registry.Context) error {
		count++
		return nil
	})

	rt := runtime.New(runtime.Config{Registry: reg})
	rt.Kill()

	events := []chainmodel.Event{newEvent(1, "Pool:Swap", 1, 0)}
	require.NoError(t, rt.ProcessRealtimeEvents(context.Background(), events, &registry.Context{}))
	require.Equal(t, 0, count)
}
