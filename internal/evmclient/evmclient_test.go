package evmclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/evmclient"
	"github.com/0xkanth/evmindexer/internal/rpc"
)

type fakeCache struct {
	data map[string][]byte
	gets int
	puts int
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (f *fakeCache) GetRPCCache(key string) ([]byte, bool, error) {
	f.gets++
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeCache) PutRPCCache(key string, result []byte) error {
	f.puts++
	f.data[key] = result
	return nil
}

func decimalsMethod(t *testing.T) abi.Method {
	t.Helper()
	uint8Ty, err := abi.NewType("uint8", "", nil)
	require.NoError(t, err)
	return abi.NewMethod("decimals", "decimals", abi.Function, "view", true, false, nil, abi.Arguments{{Type: uint8Ty}})
}

// newEthCallServer answers eth_chainId and eth_call with a fixed 32-byte
// uint8 result, counting how many eth_call requests it receives.
func newEthCallServer(t *testing.T, result string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		switch req.Method {
		case "eth_chainId":
			resp["result"] = "0x1"
		case "eth_call":
			calls++
			resp["result"] = result
		default:
			resp["result"] = nil
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	return srv, &calls
}

func TestReadContractDecodesResult(t *testing.T) {
	result := "0x0000000000000000000000000000000000000000000000000000000000000012" // 18
	srv, calls := newEthCallServer(t, result)
	defer srv.Close()

	queue, err := rpc.Dial(context.Background(), srv.URL, 1, 4, zerolog.Nop())
	require.NoError(t, err)
	defer queue.Close()

	client := evmclient.New(1, queue, nil)
	addr := common.HexToAddress("0x1111111111111111111111111111111111111111")

	values, err := client.ReadContract(context.Background(), addr, decimalsMethod(t), nil, evmclient.ReadOpts{})
	require.NoError(t, err)
	require.Len(t, values, 1)
	require.EqualValues(t, 18, values[0])
	require.Equal(t, 1, *calls)
}

func TestReadContractImmutableCacheHit(t *testing.T) {
	result := "0x0000000000000000000000000000000000000000000000000000000000000012"
	srv, calls := newEthCallServer(t, result)
	defer srv.Close()

	queue, err := rpc.Dial(context.Background(), srv.URL, 1, 4, zerolog.Nop())
	require.NoError(t, err)
	defer queue.Close()

	cache := newFakeCache()
	client := evmclient.New(1, queue, cache)
	addr := common.HexToAddress("0x2222222222222222222222222222222222222222")
	method := decimalsMethod(t)

	_, err = client.ReadContract(context.Background(), addr, method, nil, evmclient.ReadOpts{Immutable: true})
	require.NoError(t, err)
	require.Equal(t, 1, *calls)
	require.Equal(t, 1, cache.puts)

	_, err = client.ReadContract(context.Background(), addr, method, nil, evmclient.ReadOpts{Immutable: true})
	require.NoError(t, err)
	require.Equal(t, 1, *calls, "second immutable read must be served from cache, not a new eth_call")
}

func TestMulticallCollectsPerCallErrors(t *testing.T) {
	srv, _ := newEthCallServer(t, "0x0000000000000000000000000000000000000000000000000000000000000012")
	defer srv.Close()

	queue, err := rpc.Dial(context.Background(), srv.URL, 1, 4, zerolog.Nop())
	require.NoError(t, err)
	defer queue.Close()

	client := evmclient.New(1, queue, nil)
	method := decimalsMethod(t)
	addr := common.HexToAddress("0x3333333333333333333333333333333333333333")

	results, err := client.Multicall(context.Background(), nil, []evmclient.MulticallRead{
		{Address: addr, Method: method},
		{Address: addr, Method: method},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.NoError(t, r.Err)
		require.EqualValues(t, 18, r.Values[0])
	}
}
