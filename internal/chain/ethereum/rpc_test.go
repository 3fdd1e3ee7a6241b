package ethereum_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/chain/ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRPCServer(t *testing.T, handle func(method string, params []json.RawMessage) (interface{}, *ethereum.RPCError)) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			JSONRPC string            `json:"jsonrpc"`
			Method  string            `json:"method"`
			Params  []json.RawMessage `json:"params"`
			ID      int64             `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)

		result, rpcErr := handle(req.Method, req.Params)

		res := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr != nil {
			res["error"] = rpcErr
		} else {
			res["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestRPCClientCall(t *testing.T) {
	to := common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")

	srv := newRPCServer(t, func(method string, params []json.RawMessage) (interface{}, *ethereum.RPCError) {
		require.Equal(t, "eth_call", method)
		require.Len(t, params, 2)

		var msg struct {
			To   string `json:"to"`
			Data string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(params[0], &msg))
		assert.Equal(t, to.Hex(), msg.To)
		assert.Equal(t, "0x6352211e", msg.Data)
		assert.JSONEq(t, `"latest"`, string(params[1]))

		return "0x000000000000000000000000000000000000000000000000000000000000002a", nil
	})

	client := ethereum.NewRPCClient(srv.URL, time.Second)
	out, err := client.Call(context.Background(), to, []byte{0x63, 0x52, 0x21, 0x1e})
	require.NoError(t, err)
	require.Len(t, out, 32)
	assert.Equal(t, byte(0x2a), out[31])
}

func TestRPCClientChainID(t *testing.T) {
	srv := newRPCServer(t, func(method string, params []json.RawMessage) (interface{}, *ethereum.RPCError) {
		require.Equal(t, "eth_chainId", method)
		return "0xaa36a7", nil
	})

	chainID, err := ethereum.NewRPCClient(srv.URL, time.Second).ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(11155111), chainID)
}

func TestRPCClientError(t *testing.T) {
	srv := newRPCServer(t, func(method string, params []json.RawMessage) (interface{}, *ethereum.RPCError) {
		return nil, &ethereum.RPCError{Code: 3, Message: "execution reverted"}
	})

	_, err := ethereum.NewRPCClient(srv.URL, time.Second).Call(context.Background(), common.Address{}, nil)
	require.Error(t, err)

	var rpcErr *ethereum.RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, 3, rpcErr.Code)
}

func TestRPCClientHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := ethereum.NewRPCClient(srv.URL, time.Second).ChainID(context.Background())
	assert.Error(t, err)
}

func TestRPCClientContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := ethereum.NewRPCClient(srv.URL, 5*time.Second).ChainID(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRPCClientOversizedResponse(t *testing.T) {
	srv := newRPCServer(t, func(method string, params []json.RawMessage) (interface{}, *ethereum.RPCError) {
		return "0x" + strings.Repeat("00", 5<<20), nil
	})

	client := ethereum.NewRPCClient(srv.URL, 5*time.Second)
	_, err := client.Call(context.Background(), common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"), []byte{0x01})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode RPC response")
}
