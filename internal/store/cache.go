package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/0xkanth/evmindexer/internal/telemetry"
)

// rowEntry is one cached row plus enough bookkeeping to flush or roll it
// back.
type rowEntry struct {
	row      *Row
	snapshot map[string]any // pre-mutation copy; nil if nothing dirty to roll back to
	dirty    bool
	deleted  bool
}

type tableState struct {
	spec *TableSpec
	rows map[string]*rowEntry // key: pkKey(spec, values)
}

// Cache is the write-through cache bound to exactly one in-flight
// transaction (qb). The runtime creates a fresh Cache per Store.Begin and
// discards it at commit/rollback.
type Cache struct {
	qb      QueryBuilder
	metrics *telemetry.Metrics
	tables  map[string]*tableState
	include map[string]map[string]struct{} // table -> narrowed include set
}

// NewCache builds a cache that issues reads/writes through qb.
func NewCache(qb QueryBuilder, metrics *telemetry.Metrics) *Cache {
	return &Cache{
		qb:      qb,
		metrics: metrics,
		tables:  map[string]*tableState{},
		include: map[string]map[string]struct{}{},
	}
}

// SetInclude narrows the columns a handler may read/write on table, fed by
// the runtime's column-access-driven narrowing (§4.6). Pass nil to lift any
// restriction.
func (c *Cache) SetInclude(table string, columns []string) {
	if columns == nil {
		delete(c.include, table)
		return
	}
	set := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		set[col] = struct{}{}
	}
	c.include[table] = set
}

func (c *Cache) stateFor(spec *TableSpec) *tableState {
	st, ok := c.tables[spec.Name]
	if !ok {
		st = &tableState{spec: spec, rows: map[string]*rowEntry{}}
		c.tables[spec.Name] = st
	}
	return st
}

func pkKey(spec *TableSpec, values map[string]any) (string, error) {
	pk := spec.PrimaryKeyColumns()
	if len(pk) == 0 {
		return "", fmt.Errorf("store: table %q has no primary key column", spec.Name)
	}
	parts := make([]string, len(pk))
	for i, col := range pk {
		parts[i] = fmt.Sprint(values[col])
	}
	return strings.Join(parts, "\x1f"), nil
}

func (c *Cache) countRequest(outcome string) {
	if c.metrics == nil {
		return
	}
	c.metrics.CacheRequests.WithLabelValues(outcome).Inc()
}

// Find resolves keyPred against table: a cache hit first, then the DB on a
// miss (filling the cache). Returns (nil, nil) if no row matches.
func (c *Cache) Find(ctx context.Context, table *TableSpec, keyPred map[string]any) (*Row, error) {
	defer c.countRequest("complete")

	st := c.stateFor(table)
	key, err := pkKey(table, keyPred)
	if err != nil {
		return nil, err
	}

	if entry, ok := st.rows[key]; ok {
		c.countRequest("hit")
		if entry.deleted {
			return nil, nil
		}
		return entry.row, nil
	}

	c.countRequest("miss")
	values, err := c.qb.Select(ctx, table, keyPred)
	if err != nil {
		return nil, err
	}
	if values == nil {
		return nil, nil
	}

	row := newRow(table, values, c.include[table.Name])
	st.rows[key] = &rowEntry{row: row}
	return row, nil
}

// applyDefaults fills columns missing from values with their declared
// Default/DefaultFn, and returns a NotNullConstraintError for any notNull
// column still unset afterward.
func applyDefaults(table *TableSpec, values map[string]any) (map[string]any, error) {
	out := cloneValues(values)
	for _, col := range table.Columns {
		if _, present := out[col.Name]; present {
			continue
		}
		switch {
		case col.DefaultFunc != nil:
			out[col.Name] = col.DefaultFunc()
		case col.DefaultValue != nil:
			out[col.Name] = col.DefaultValue
		}
	}
	for _, col := range table.Columns {
		if col.IsNotNull {
			if v, ok := out[col.Name]; !ok || v == nil {
				return nil, &NotNullConstraintError{Table: table.Name, Column: col.Name}
			}
		}
	}
	return out, nil
}

// Insert writes one row, applying defaults and the conflict-handling
// variant requested by opts. A plain insert (no opts) that collides with an
// existing primary key surfaces the DB's UniqueConstraintError.
func (c *Cache) Insert(ctx context.Context, table *TableSpec, values map[string]any, opts InsertOptions) (*Row, error) {
	rows, err := c.InsertBatch(ctx, table, []map[string]any{values}, opts)
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

// InsertBatch is the `.values([...])` variant: returns a parallel result
// list, with a nil entry wherever OnConflictDoNothing discarded a row.
func (c *Cache) InsertBatch(ctx context.Context, table *TableSpec, valuesList []map[string]any, opts InsertOptions) ([]*Row, error) {
	prepared := make([]map[string]any, len(valuesList))
	for i, v := range valuesList {
		withDefaults, err := applyDefaults(table, v)
		if err != nil {
			return nil, err
		}
		prepared[i] = withDefaults
	}

	results, err := c.qb.Insert(ctx, table, prepared, opts)
	if err != nil {
		return nil, err
	}

	st := c.stateFor(table)
	rows := make([]*Row, len(results))
	for i, values := range results {
		if values == nil {
			rows[i] = nil
			continue
		}
		key, err := pkKey(table, values)
		if err != nil {
			return nil, err
		}
		row := newRow(table, values, c.include[table.Name])
		st.rows[key] = &rowEntry{row: row, dirty: true, snapshot: nil}
		rows[i] = row
	}
	return rows, nil
}

// applyPatch applies either a literal column map or a function of the
// current row values, returning the merged result.
func applyPatch(current map[string]any, patch any) (map[string]any, error) {
	merged := cloneValues(current)
	switch p := patch.(type) {
	case map[string]any:
		for k, v := range p {
			merged[k] = v
		}
	case func(map[string]any) map[string]any:
		for k, v := range p(cloneValues(current)) {
			merged[k] = v
		}
	default:
		return nil, fmt.Errorf("store: update patch must be a map[string]any or func(map[string]any) map[string]any, got %T", patch)
	}
	return merged, nil
}

// Update applies patch (a map or a func(current) map) to the single row
// matching keyPred and returns its post-image. Changing the primary key to
// a different value is rejected with IndexingDBError; setting it to the
// same value is a no-op for that column.
func (c *Cache) Update(ctx context.Context, table *TableSpec, keyPred map[string]any, patch any) (*Row, error) {
	existing, err := c.Find(ctx, table, keyPred)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &IndexingDBError{Table: table.Name, Msg: "update: no row matches keyPred"}
	}

	current := existing.Values()
	merged, err := applyPatch(current, patch)
	if err != nil {
		return nil, err
	}

	for _, col := range table.PrimaryKeyColumns() {
		if fmt.Sprint(merged[col]) != fmt.Sprint(current[col]) {
			return nil, &IndexingDBError{Table: table.Name, Msg: fmt.Sprintf("update: cannot change primary key column %q", col)}
		}
	}

	for _, col := range table.Columns {
		if col.OnUpdateFunc == nil {
			continue
		}
		if _, explicitlySet := asPatchMap(patch)[col.Name]; explicitlySet {
			continue
		}
		merged[col.Name] = col.OnUpdateFunc(current[col.Name])
	}

	values, err := c.qb.Update(ctx, table, keyPred, diff(current, merged))
	if err != nil {
		return nil, err
	}

	st := c.stateFor(table)
	key, err := pkKey(table, values)
	if err != nil {
		return nil, err
	}
	row := newRow(table, values, c.include[table.Name])
	st.rows[key] = &rowEntry{row: row, dirty: true, snapshot: current}
	return row, nil
}

func asPatchMap(patch any) map[string]any {
	if m, ok := patch.(map[string]any); ok {
		return m
	}
	return nil
}

func diff(before, after map[string]any) map[string]any {
	out := map[string]any{}
	for k, v := range after {
		if prev, ok := before[k]; !ok || fmt.Sprint(prev) != fmt.Sprint(v) {
			out[k] = v
		}
	}
	return out
}

// Delete removes the row matching keyPred, reporting whether one existed.
func (c *Cache) Delete(ctx context.Context, table *TableSpec, keyPred map[string]any) (bool, error) {
	existing, err := c.Find(ctx, table, keyPred)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	ok, err := c.qb.Delete(ctx, table, keyPred)
	if err != nil {
		return false, err
	}

	st := c.stateFor(table)
	key, err := pkKey(table, keyPred)
	if err != nil {
		return false, err
	}
	st.rows[key] = &rowEntry{row: existing, deleted: true, dirty: true}
	return ok, nil
}

// Flush is a no-op beyond bookkeeping: every cache mutation above already
// went straight through qb inside the current transaction (so a raw SQL
// statement issued later in the same transaction observes it). Flush
// simply marks the cache consistent with the DB and discards snapshots,
// matching the spec's "after a successful flush, snapshots are discarded".
func (c *Cache) Flush(ctx context.Context) error {
	for _, st := range c.tables {
		for key, entry := range st.rows {
			if entry.deleted {
				delete(st.rows, key)
				continue
			}
			entry.dirty = false
			entry.snapshot = nil
		}
	}
	return nil
}

// Clear drops all cached state unconditionally (used for reorg rollback).
func (c *Cache) Clear() {
	c.tables = map[string]*tableState{}
}

// Invalidate drops every row's cached current value and accessed-column
// tracking, forcing the next Find to hit the DB, without discarding the
// cache's table/include bookkeeping.
func (c *Cache) Invalidate() {
	for _, st := range c.tables {
		st.rows = map[string]*rowEntry{}
	}
}

// AccessedColumns returns, per table, the union of columns read or written
// on every row currently tracked by this cache. The runtime accumulates
// this across a window of events to drive include-set narrowing (§4.6).
func (c *Cache) AccessedColumns() map[string][]string {
	out := make(map[string][]string, len(c.tables))
	for name, st := range c.tables {
		seen := map[string]struct{}{}
		for _, entry := range st.rows {
			for _, col := range entry.row.AccessedColumns() {
				seen[col] = struct{}{}
			}
		}
		if len(seen) == 0 {
			continue
		}
		cols := make([]string, 0, len(seen))
		for col := range seen {
			cols = append(cols, col)
		}
		out[name] = cols
	}
	return out
}
