package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/store"
)

func TestTableSpecBuilder(t *testing.T) {
	table := store.NewTable("transfers")
	table.Column("id", store.Text).PrimaryKey()
	table.Column("amount", store.BigInt).NotNull()
	table.Column("tags", store.Array).OfElements(store.Text)
	table.Column("status", store.Enum).OfValues("pending", "settled")
	table.Column("created_at", store.Timestamp).DefaultFn(func() any { return "now" })

	require.Equal(t, []string{"id"}, table.PrimaryKeyColumns())

	amount, ok := table.ColumnByName("amount")
	require.True(t, ok)
	require.True(t, amount.IsNotNull)
	require.Equal(t, store.BigInt, amount.Kind)

	tags, ok := table.ColumnByName("tags")
	require.True(t, ok)
	require.Equal(t, store.Text, tags.ArrayElem)

	status, ok := table.ColumnByName("status")
	require.True(t, ok)
	require.Equal(t, []string{"pending", "settled"}, status.EnumValues)

	_, ok = table.ColumnByName("missing")
	require.False(t, ok)
}

func TestColumnKindString(t *testing.T) {
	require.Equal(t, "bigint", store.BigInt.String())
	require.Equal(t, "doublePrecision", store.DoublePrecision.String())
}
