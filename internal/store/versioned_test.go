package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/store"
)

// versionedFakeQB extends the Update/Insert behavior needed by
// CloseAndInsertVersion and records the last Raw call for FindVersioned
// assertions, without needing a live Postgres connection.
type versionedFakeQB struct {
	updates []map[string]any
	inserts []map[string]any
	lastSQL string
	lastArg []any
}

func (f *versionedFakeQB) Select(ctx context.Context, table *store.TableSpec, keyPred map[string]any) (map[string]any, error) {
	return nil, nil
}

func (f *versionedFakeQB) Insert(ctx context.Context, table *store.TableSpec, rows []map[string]any, opts store.InsertOptions) ([]map[string]any, error) {
	f.inserts = append(f.inserts, rows...)
	return rows, nil
}

func (f *versionedFakeQB) Update(ctx context.Context, table *store.TableSpec, keyPred map[string]any, patch map[string]any) (map[string]any, error) {
	merged := map[string]any{}
	for k, v := range keyPred {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	f.updates = append(f.updates, merged)
	return merged, nil
}

func (f *versionedFakeQB) Delete(ctx context.Context, table *store.TableSpec, keyPred map[string]any) (bool, error) {
	return true, nil
}

func (f *versionedFakeQB) Raw(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	f.lastSQL = sql
	f.lastArg = args
	return []map[string]any{{"id": "a", "effective_to": "latest"}}, nil
}

func positionsTable() *store.TableSpec {
	t := store.NewTable("positions")
	t.Column("id", store.Text).PrimaryKey()
	t.Column("balance", store.BigInt)
	return t
}

func TestCloseAndInsertVersion(t *testing.T) {
	qb := &versionedFakeQB{}
	table := positionsTable()

	row, err := store.CloseAndInsertVersion(context.Background(), qb, table,
		map[string]any{"id": "a"}, "cp-2", map[string]any{"balance": "50"})
	require.NoError(t, err)
	require.Equal(t, "cp-2", row[store.EffectiveFromColumn])
	require.Equal(t, store.LatestCheckpoint, row[store.EffectiveToColumn])

	require.Len(t, qb.updates, 1)
	require.Equal(t, "cp-2", qb.updates[0][store.EffectiveToColumn])

	require.Len(t, qb.inserts, 1)
	require.Equal(t, "a", qb.inserts[0]["id"])
}

func TestFindVersionedLatestBuildsOpenIntervalQuery(t *testing.T) {
	qb := &versionedFakeQB{}
	table := positionsTable()

	row, err := store.FindVersioned(context.Background(), qb, table, map[string]any{"id": "a"}, store.LatestCheckpoint)
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Contains(t, qb.lastSQL, `"effective_to" = 'latest'`)
}

func TestFindVersionedExplicitCheckpointBindsWindowArgs(t *testing.T) {
	qb := &versionedFakeQB{}
	table := positionsTable()

	_, err := store.FindVersioned(context.Background(), qb, table, map[string]any{"id": "a"}, "cp-5")
	require.NoError(t, err)
	require.Contains(t, qb.lastSQL, `"effective_from" <= $2`)
	require.Equal(t, []any{"a", "cp-5"}, qb.lastArg)
}
