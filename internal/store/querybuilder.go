package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/0xkanth/evmindexer/internal/telemetry"
)

// QueryBuilder is the transactional query interface the cache issues
// find/insert/update/delete through, plus the raw SQL escape hatch. It is an
// interface so tests can substitute an in-memory fake instead of a live
// Postgres connection.
type QueryBuilder interface {
	Select(ctx context.Context, table *TableSpec, keyPred map[string]any) (map[string]any, error)
	Insert(ctx context.Context, table *TableSpec, rows []map[string]any, opts InsertOptions) ([]map[string]any, error)
	Update(ctx context.Context, table *TableSpec, keyPred map[string]any, patch map[string]any) (map[string]any, error)
	Delete(ctx context.Context, table *TableSpec, keyPred map[string]any) (bool, error)
	Raw(ctx context.Context, sql string, args ...any) ([]map[string]any, error)
}

// InsertOptions configures the conflict-handling variants of insert.
type InsertOptions struct {
	OnConflictDoNothing bool
	// OnConflictDoUpdate, when set, is applied to the row currently in the
	// database to compute the patch written on conflict.
	OnConflictDoUpdate func(current map[string]any) map[string]any
}

// PgQueryBuilder implements QueryBuilder against a single pgx.Tx. It is
// created fresh per indexing transaction by Store.Begin.
type PgQueryBuilder struct {
	tx      pgx.Tx
	logger  zerolog.Logger
	metrics *telemetry.Metrics

	triggersInstalled bool
	installTriggers    func(ctx context.Context, tx pgx.Tx) error
}

func newPgQueryBuilder(tx pgx.Tx, logger zerolog.Logger, metrics *telemetry.Metrics, installTriggers func(ctx context.Context, tx pgx.Tx) error) *PgQueryBuilder {
	return &PgQueryBuilder{tx: tx, logger: logger, metrics: metrics, installTriggers: installTriggers}
}

func (q *PgQueryBuilder) observe(method string, start time.Time) {
	if q.metrics == nil {
		return
	}
	q.metrics.DatabaseMethodDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

func (q *PgQueryBuilder) ensureTriggers(ctx context.Context) error {
	if q.triggersInstalled || q.installTriggers == nil {
		return nil
	}
	if err := q.installTriggers(ctx, q.tx); err != nil {
		return fmt.Errorf("store: install triggers: %w", err)
	}
	q.triggersInstalled = true
	return nil
}

// sortedKeys returns pred's keys in a stable order so generated SQL and its
// bound argument list always agree.
func sortedKeys(pred map[string]any) []string {
	keys := make([]string, 0, len(pred))
	for k := range pred {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func whereClause(pred map[string]any, startArg int) (string, []any) {
	keys := sortedKeys(pred)
	clauses := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		clauses[i] = fmt.Sprintf("%s = $%d", quoteIdent(k), startArg+i)
		args[i] = pred[k]
	}
	return strings.Join(clauses, " AND "), args
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Select fetches the single row matching keyPred, or nil if there is none.
func (q *PgQueryBuilder) Select(ctx context.Context, table *TableSpec, keyPred map[string]any) (map[string]any, error) {
	defer q.observe("select", time.Now())

	where, args := whereClause(keyPred, 1)
	sqlStr := fmt.Sprintf("SELECT * FROM %s WHERE %s LIMIT 1", quoteIdent(table.Name), where)

	rows, err := q.tx.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, classifyError(table.Name, err)
	}
	defer rows.Close()

	result, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyError(table.Name, err)
	}
	return result, nil
}

// Insert writes one or more rows. With OnConflictDoNothing, a conflicted row
// is represented as a nil entry in the parallel result list, matching the
// spec's "returns null for conflicted rows" contract.
func (q *PgQueryBuilder) Insert(ctx context.Context, table *TableSpec, rowsIn []map[string]any, opts InsertOptions) ([]map[string]any, error) {
	defer q.observe("insert", time.Now())
	if len(rowsIn) == 0 {
		return nil, nil
	}

	cols := sortedKeys(rowsIn[0])
	results := make([]map[string]any, len(rowsIn))

	for i, row := range rowsIn {
		placeholders := make([]string, len(cols))
		args := make([]any, len(cols))
		for j, c := range cols {
			placeholders[j] = fmt.Sprintf("$%d", j+1)
			args[j] = row[c]
		}

		quotedCols := make([]string, len(cols))
		for j, c := range cols {
			quotedCols[j] = quoteIdent(c)
		}

		conflictClause := ""
		switch {
		case opts.OnConflictDoNothing:
			conflictClause = " ON CONFLICT DO NOTHING"
		case opts.OnConflictDoUpdate != nil:
			pk := table.PrimaryKeyColumns()
			current, err := q.Select(ctx, table, subsetByColumns(row, pk))
			if err != nil {
				return nil, err
			}
			if current != nil {
				patch := opts.OnConflictDoUpdate(current)
				setCols := sortedKeys(patch)
				setClauses := make([]string, len(setCols))
				for j, c := range setCols {
					setClauses[j] = fmt.Sprintf("%s = $%d", quoteIdent(c), len(args)+1)
					args = append(args, patch[c])
				}
				conflictClause = fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s", strings.Join(quoteIdentAll(pk), ","), strings.Join(setClauses, ","))
			} else {
				conflictClause = " ON CONFLICT DO NOTHING"
			}
		}

		sqlStr := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)%s RETURNING *",
			quoteIdent(table.Name), strings.Join(quotedCols, ","), strings.Join(placeholders, ","), conflictClause)

		rows, err := q.tx.Query(ctx, sqlStr, args...)
		if err != nil {
			return nil, classifyError(table.Name, err)
		}
		result, err := pgx.CollectOneRow(rows, pgx.RowToMap)
		if errors.Is(err, pgx.ErrNoRows) {
			results[i] = nil
			continue
		}
		if err != nil {
			return nil, classifyError(table.Name, err)
		}
		results[i] = result
	}

	return results, nil
}

// Update applies patch to the single row matching keyPred and returns its
// post-image.
func (q *PgQueryBuilder) Update(ctx context.Context, table *TableSpec, keyPred map[string]any, patch map[string]any) (map[string]any, error) {
	defer q.observe("update", time.Now())

	setCols := sortedKeys(patch)
	setClauses := make([]string, len(setCols))
	args := make([]any, 0, len(setCols)+len(keyPred))
	for i, c := range setCols {
		setClauses[i] = fmt.Sprintf("%s = $%d", quoteIdent(c), i+1)
		args = append(args, patch[c])
	}
	where, whereArgs := whereClause(keyPred, len(setCols)+1)
	args = append(args, whereArgs...)

	sqlStr := fmt.Sprintf("UPDATE %s SET %s WHERE %s RETURNING *", quoteIdent(table.Name), strings.Join(setClauses, ","), where)

	rows, err := q.tx.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, classifyError(table.Name, err)
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, classifyError(table.Name, err)
	}
	return result, nil
}

// Delete removes the row matching keyPred, reporting whether one existed.
func (q *PgQueryBuilder) Delete(ctx context.Context, table *TableSpec, keyPred map[string]any) (bool, error) {
	defer q.observe("delete", time.Now())

	where, args := whereClause(keyPred, 1)
	sqlStr := fmt.Sprintf("DELETE FROM %s WHERE %s", quoteIdent(table.Name), where)

	tag, err := q.tx.Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, classifyError(table.Name, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Raw executes sqlStr inside a savepoint so a failing raw statement rolls
// back only its own effects, leaving the outer indexing transaction intact.
func (q *PgQueryBuilder) Raw(ctx context.Context, sqlStr string, args ...any) ([]map[string]any, error) {
	if err := q.ensureTriggers(ctx); err != nil {
		return nil, err
	}
	defer q.observe("raw_sql", time.Now())

	savepoint, err := q.tx.Begin(ctx)
	if err != nil {
		return nil, &RawSqlError{SQL: sqlStr, Err: err}
	}

	rows, err := savepoint.Query(ctx, sqlStr, args...)
	if err != nil {
		_ = savepoint.Rollback(ctx)
		return nil, &RawSqlError{SQL: sqlStr, Err: err}
	}

	result, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		_ = savepoint.Rollback(ctx)
		return nil, &RawSqlError{SQL: sqlStr, Err: err}
	}

	if err := savepoint.Commit(ctx); err != nil {
		return nil, &RawSqlError{SQL: sqlStr, Err: err}
	}
	return result, nil
}

func subsetByColumns(row map[string]any, cols []string) map[string]any {
	out := make(map[string]any, len(cols))
	for _, c := range cols {
		out[c] = row[c]
	}
	return out
}

func quoteIdentAll(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = quoteIdent(c)
	}
	return out
}

func classifyError(table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23502": // not_null_violation
			return &NotNullConstraintError{Table: table, Column: pgErr.ColumnName}
		case "23505": // unique_violation
			return &UniqueConstraintError{Table: table, Columns: []string{pgErr.ConstraintName}}
		}
	}
	return &IndexingDBError{Table: table, Msg: "query failed", Err: err}
}
