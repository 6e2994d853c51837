package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/store"
)

// fakeQB is an in-memory QueryBuilder standing in for Postgres, letting
// Cache's find/insert/update/delete semantics be tested without a live
// connection.
type fakeQB struct {
	rows       map[string]map[string]any // pkKey -> row
	selectHits int
}

func newFakeQB() *fakeQB { return &fakeQB{rows: map[string]map[string]any{}} }

func (f *fakeQB) key(keyPred map[string]any) string {
	return keyPred["id"].(string)
}

func (f *fakeQB) Select(ctx context.Context, table *store.TableSpec, keyPred map[string]any) (map[string]any, error) {
	f.selectHits++
	row, ok := f.rows[f.key(keyPred)]
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
		id := row["id"].(string)
		if _, exists := f.rows[id]; exists {
			switch {
			case opts.OnConflictDoNothing:
				results[i] = nil
				continue
			case opts.OnConflictDoUpdate != nil:
				patch := opts.OnConflictDoUpdate(f.rows[id])
				for k, v := range patch {
					f.rows[id][k] = v
				}
				results[i] = f.rows[id]
				continue
			default:
				return nil, &store.UniqueConstraintError{Table: table.Name, Columns: []string{"id"}}
			}
		}
		f.rows[id] = row
		results[i] = row
	}
	return results, nil
}

func (f *fakeQB) Update(ctx context.Context, table *store.TableSpec, keyPred map[string]any, patch map[string]any) (map[string]any, error) {
	id := f.key(keyPred)
	row, ok := f.rows[id]
	if !ok {
		return nil, &store.IndexingDBError{Table: table.Name, Msg: "not found"}
	}
	for k, v := range patch {
		row[k] = v
	}
	return row, nil
}

func (f *fakeQB) Delete(ctx context.Context, table *store.TableSpec, keyPred map[string]any) (bool, error) {
	id := f.key(keyPred)
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

func (f *fakeQB) Raw(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	return nil, nil
}

func transfersTable() *store.TableSpec {
	t := store.NewTable("transfers")
	t.Column("id", store.Text).PrimaryKey()
	t.Column("amount", store.BigInt).NotNull()
	t.Column("memo", store.Text)
	return t
}

func TestCacheFindFillsOnMiss(t *testing.T) {
	qb := newFakeQB()
	qb.rows["a"] = map[string]any{"id": "a", "amount": "10"}
	cache := store.NewCache(qb, nil)
	table := transfersTable()

	row, err := cache.Find(context.Background(), table, map[string]any{"id": "a"})
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Equal(t, 1, qb.selectHits)

	// Second Find for the same key must be served from cache.
	_, err = cache.Find(context.Background(), table, map[string]any{"id": "a"})
	require.NoError(t, err)
	require.Equal(t, 1, qb.selectHits)
}

func TestCacheFindReturnsNilForMissingRow(t *testing.T) {
	qb := newFakeQB()
	cache := store.NewCache(qb, nil)
	row, err := cache.Find(context.Background(), transfersTable(), map[string]any{"id": "missing"})
	require.NoError(t, err)
	require.Nil(t, row)
}

func TestCacheInsertAppliesDefaultsAndRejectsMissingNotNull(t *testing.T) {
	qb := newFakeQB()
	cache := store.NewCache(qb, nil)
	table := transfersTable()

	_, err := cache.Insert(context.Background(), table, map[string]any{"id": "b"}, store.InsertOptions{})
	require.Error(t, err)
	var notNullErr *store.NotNullConstraintError
	require.ErrorAs(t, err, &notNullErr)
}

func TestCacheInsertOnConflictDoNothingReturnsNil(t *testing.T) {
	qb := newFakeQB()
	qb.rows["a"] = map[string]any{"id": "a", "amount": "10"}
	cache := store.NewCache(qb, nil)
	table := transfersTable()

	rows, err := cache.InsertBatch(context.Background(), table, []map[string]any{
		{"id": "a", "amount": "20"},
		{"id": "c", "amount": "30"},
	}, store.InsertOptions{OnConflictDoNothing: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Nil(t, rows[0])
	require.NotNil(t, rows[1])
}

func TestCacheUpdateRejectsPrimaryKeyChange(t *testing.T) {
	qb := newFakeQB()
	qb.rows["a"] = map[string]any{"id": "a", "amount": "10"}
	cache := store.NewCache(qb, nil)
	table := transfersTable()

	_, err := cache.Update(context.Background(), table, map[string]any{"id": "a"}, map[string]any{"id": "z"})
	require.Error(t, err)
	var dbErr *store.IndexingDBError
	require.ErrorAs(t, err, &dbErr)
}

func TestCacheUpdateAllowsSamePrimaryKeyValue(t *testing.T) {
	qb := newFakeQB()
	qb.rows["a"] = map[string]any{"id": "a", "amount": "10"}
	cache := store.NewCache(qb, nil)
	table := transfersTable()

	row, err := cache.Update(context.Background(), table, map[string]any{"id": "a"}, map[string]any{"id": "a", "amount": "99"})
	require.NoError(t, err)
	v, err := row.Get("amount")
	require.NoError(t, err)
	require.Equal(t, "99", v)
}

func TestCacheDeleteReportsExistence(t *testing.T) {
	qb := newFakeQB()
	qb.rows["a"] = map[string]any{"id": "a", "amount": "10"}
	cache := store.NewCache(qb, nil)
	table := transfersTable()

	ok, err := cache.Delete(context.Background(), table, map[string]any{"id": "a"})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = cache.Delete(context.Background(), table, map[string]any{"id": "a"})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRowAccessTrackingAndIncludeRestriction(t *testing.T) {
	qb := newFakeQB()
	qb.rows["a"] = map[string]any{"id": "a", "amount": "10", "memo": "hi"}
	cache := store.NewCache(qb, nil)
	table := transfersTable()
	cache.SetInclude("transfers", []string{"id", "amount"})

	row, err := cache.Find(context.Background(), table, map[string]any{"id": "a"})
	require.NoError(t, err)

	_, err = row.Get("amount")
	require.NoError(t, err)
	require.Contains(t, row.AccessedColumns(), "amount")

	_, err = row.Get("memo")
	require.Error(t, err)
	var accessErr *store.InvalidEventAccessError
	require.ErrorAs(t, err, &accessErr)
}

func TestCacheAccessedColumnsUnionsAcrossRows(t *testing.T) {
	qb := newFakeQB()
	qb.rows["a"] = map[string]any{"id": "a", "amount": "10", "memo": "hi"}
	qb.rows["b"] = map[string]any{"id": "b", "amount": "20", "memo": "bye"}
	cache := store.NewCache(qb, nil)
	table := transfersTable()

	rowA, err := cache.Find(context.Background(), table, map[string]any{"id": "a"})
	require.NoError(t, err)
	_, err = rowA.Get("amount")
	require.NoError(t, err)

	rowB, err := cache.Find(context.Background(), table, map[string]any{"id": "b"})
	require.NoError(t, err)
	_, err = rowB.Get("memo")
	require.NoError(t, err)

	accessed := cache.AccessedColumns()
	require.ElementsMatch(t, []string{"amount", "memo"}, accessed["transfers"])
}

func TestCacheClearDropsAllState(t *testing.T) {
	qb := newFakeQB()
	qb.rows["a"] = map[string]any{"id": "a", "amount": "10"}
	cache := store.NewCache(qb, nil)
	table := transfersTable()

	_, err := cache.Find(context.Background(), table, map[string]any{"id": "a"})
	require.NoError(t, err)
	require.Equal(t, 1, qb.selectHits)

	cache.Clear()
	_, err = cache.Find(context.Background(), table, map[string]any{"id": "a"})
	require.NoError(t, err)
	require.Equal(t, 2, qb.selectHits)
}
