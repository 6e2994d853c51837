package store_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/store"
)

func TestEncodeTextArrayRoundTrip(t *testing.T) {
	in := []string{"a", `b"c`, `d\e`, ""}
	encoded := store.EncodeTextArray(in)
	require.Equal(t, `{"a","b\"c","d\\e",""}`, encoded)

	decoded, err := store.DecodeTextArray(encoded)
	require.NoError(t, err)
	require.Equal(t, in, decoded)
}

func TestDecodeTextArrayEmpty(t *testing.T) {
	decoded, err := store.DecodeTextArray("{}")
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestDecodeTextArrayRejectsMalformed(t *testing.T) {
	_, err := store.DecodeTextArray("not an array")
	require.Error(t, err)
}

func TestPointRoundTrip(t *testing.T) {
	p := store.Point{X: 1.5, Y: -2.25}
	parsed, err := store.ParsePoint(p.String())
	require.NoError(t, err)
	require.Equal(t, p, parsed)
}

func TestLineRoundTrip(t *testing.T) {
	l := store.Line{A: 1, B: 2, C: -3.5}
	parsed, err := store.ParseLine(l.String())
	require.NoError(t, err)
	require.Equal(t, l, parsed)
}

func TestEncodeValueBigIntAcceptsBigIntAndString(t *testing.T) {
	v, err := store.EncodeValue(store.BigInt, big.NewInt(42))
	require.NoError(t, err)
	require.Equal(t, "42", v)

	_, err = store.EncodeValue(store.BigInt, 42)
	require.Error(t, err)
}

func TestEncodeValueJSONRejectsBigInt(t *testing.T) {
	_, err := store.EncodeValue(store.JSON, map[string]any{"amount": big.NewInt(1)})
	require.Error(t, err)
	var bigIntErr *store.BigIntSerializationError
	require.ErrorAs(t, err, &bigIntErr)
}

func TestEncodeValueTextStripsTrailingNULs(t *testing.T) {
	v, err := store.EncodeValue(store.Text, "hello\x00\x00")
	require.NoError(t, err)
	require.Equal(t, "hello", v)
}

func TestDecodeValueBigInt(t *testing.T) {
	v, err := store.DecodeValue(store.BigInt, "123456789012345678901234567890")
	require.NoError(t, err)
	n, ok := v.(*big.Int)
	require.True(t, ok)
	require.Equal(t, "123456789012345678901234567890", n.String())
}
