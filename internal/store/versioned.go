package store

import (
	"context"
	"fmt"
	"strings"
)

// Versioned row column names per the downstream schema contract: every
// onchain table row carries effective_from/effective_to checkpoints, with
// the sentinel LatestCheckpoint marking the currently-open version.
const (
	EffectiveFromColumn = "effective_from"
	EffectiveToColumn   = "effective_to"
)

// FindVersioned resolves the version of primaryKey active at checkpoint.
// Pass LatestCheckpoint to select the currently-open row; an explicit
// checkpoint selects whichever row's [effective_from, effective_to) window
// contains it.
func FindVersioned(ctx context.Context, qb QueryBuilder, table *TableSpec, primaryKey map[string]any, checkpoint string) (map[string]any, error) {
	pkCols := table.PrimaryKeyColumns()
	conds := make([]string, 0, len(pkCols)+1)
	args := make([]any, 0, len(pkCols)+1)
	for _, col := range pkCols {
		conds = append(conds, fmt.Sprintf("%s = $%d", quoteIdent(col), len(args)+1))
		args = append(args, primaryKey[col])
	}

	var windowClause string
	if checkpoint == LatestCheckpoint {
		windowClause = fmt.Sprintf("%s = '%s'", quoteIdent(EffectiveToColumn), LatestCheckpoint)
	} else {
		args = append(args, checkpoint)
		n := len(args)
		windowClause = fmt.Sprintf(
			"%s <= $%d AND (%s = '%s' OR %s > $%d)",
			quoteIdent(EffectiveFromColumn), n,
			quoteIdent(EffectiveToColumn), LatestCheckpoint,
			quoteIdent(EffectiveToColumn), n,
		)
	}

	sqlStr := fmt.Sprintf("SELECT * FROM %s WHERE %s AND %s LIMIT 1",
		quoteIdent(table.Name), strings.Join(conds, " AND "), windowClause)

	rows, err := qb.Raw(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// CloseAndInsertVersion closes the currently-open version of primaryKey
// (setting its effective_to to checkpoint) and inserts a new open version
// carrying newValues, as happens whenever a versioned table row is updated
// rather than appended for the first time.
func CloseAndInsertVersion(ctx context.Context, qb QueryBuilder, table *TableSpec, primaryKey map[string]any, checkpoint string, newValues map[string]any) (map[string]any, error) {
	closePred := cloneValues(primaryKey)
	closePred[EffectiveToColumn] = LatestCheckpoint
	if _, err := qb.Update(ctx, table, closePred, map[string]any{EffectiveToColumn: checkpoint}); err != nil {
		return nil, err
	}

	row := cloneValues(newValues)
	for _, col := range table.PrimaryKeyColumns() {
		row[col] = primaryKey[col]
	}
	row[EffectiveFromColumn] = checkpoint
	row[EffectiveToColumn] = LatestCheckpoint

	results, err := qb.Insert(ctx, table, []map[string]any{row}, InsertOptions{})
	if err != nil {
		return nil, err
	}
	return results[0], nil
}
