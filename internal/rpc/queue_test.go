package rpc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/0xkanth/evmindexer/internal/rpc"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// newMockChainServer answers just enough JSON-RPC to let ethclient.Dial
// verify a chain ID and fetch a block number; onBlockNumber lets tests
// simulate concurrent long-running calls via a handler hook.
func newMockChainServer(t *testing.T, chainIDHex string, onBlockNumber func()) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := map[string]any{"jsonrpc": "2.0", "id": json.RawMessage(req.ID)}
		switch req.Method {
		case "eth_chainId":
			resp["result"] = chainIDHex
		case "eth_blockNumber":
			if onBlockNumber != nil {
				onBlockNumber()
			}
			resp["result"] = "0x64"
		default:
			resp["result"] = nil
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})
	return httptest.NewServer(mux)
}

func TestDialVerifiesChainID(t *testing.T) {
	srv := newMockChainServer(t, "0x89", nil) // 0x89 == 137
	defer srv.Close()

	logger := mockLogger()
	q, err := rpc.Dial(context.Background(), srv.URL, 137, 4, logger)
	require.NoError(t, err)
	defer q.Close()

	require.Equal(t, uint64(137), q.ChainID().Uint64())
}

func TestDialRejectsChainIDMismatch(t *testing.T) {
	srv := newMockChainServer(t, "0x1", nil) // chain 1, not 137
	defer srv.Close()

	_, err := rpc.Dial(context.Background(), srv.URL, 137, 4, mockLogger())
	require.Error(t, err)
}

func TestLatestBlockNumberBoundedConcurrency(t *testing.T) {
	var inFlight int32
	var maxObserved int32
	release := make(chan struct{})

	srv := newMockChainServer(t, "0x89", func() {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&maxObserved)
			if n <= old || atomic.CompareAndSwapInt32(&maxObserved, old, n) {
				break
			}
		}
		<-release
		atomic.AddInt32(&inFlight, -1)
	})
	defer srv.Close()

	q, err := rpc.Dial(context.Background(), srv.URL, 137, 1, mockLogger())
	require.NoError(t, err)
	defer q.Close()

	done := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		go func() {
			_, _ = q.LatestBlockNumber(context.Background())
			done <- struct{}{}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	require.EqualValues(t, 1, atomic.LoadInt32(&maxObserved), "queue with capacity 1 must serialize calls")
	close(release)
	for i := 0; i < 3; i++ {
		<-done
	}
}
