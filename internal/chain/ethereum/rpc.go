package ethereum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// 单个 RPC 响应体的上限，eth_call 和 eth_chainId 的结果远小于该值
const maxResponseBytes = 4 << 20

// RPCClient 最小化的 Ethereum JSON-RPC 客户端，只覆盖网关需要的只读调用
type RPCClient struct {
	endpoint string
	client   *http.Client
	nextID   atomic.Int64
}

// NewRPCClient 创建 Ethereum RPC 客户端
// 调用方通过 context 控制单次请求超时，timeout 仅作为兜底
func NewRPCClient(endpoint string, timeout time.Duration) *RPCClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RPCClient{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// RPCRequest RPC 请求
type RPCRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int64         `json:"id"`
}

// RPCResponse RPC 响应
type RPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      int64           `json:"id"`
}

// RPCError RPC 错误
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error: %s (code: %d)", e.Message, e.Code)
}

// callMsg eth_call 参数
type callMsg struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

// call 执行 RPC 调用
func (c *RPCClient) call(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	req := &RPCRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal RPC request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create HTTP request")
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute HTTP request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}

	var rpcResp RPCResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&rpcResp); err != nil {
		return nil, errors.Wrap(err, "failed to decode RPC response")
	}

	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}

	return rpcResp.Result, nil
}

// Call 在最新区块上执行 eth_call
func (c *RPCClient) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	msg := callMsg{
		To:   to.Hex(),
		Data: hexutil.Encode(data),
	}
	result, err := c.call(ctx, "eth_call", []interface{}{msg, "latest"})
	if err != nil {
		return nil, errors.Wrap(err, "failed to call eth_call")
	}

	var out hexutil.Bytes
	if err := json.Unmarshal(result, &out); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal call result")
	}
	return out, nil
}

// ChainID 查询节点所在链的 chain id
func (c *RPCClient) ChainID(ctx context.Context) (uint64, error) {
	result, err := c.call(ctx, "eth_chainId", []interface{}{})
	if err != nil {
		return 0, errors.Wrap(err, "failed to call eth_chainId")
	}

	var chainID hexutil.Uint64
	if err := json.Unmarshal(result, &chainID); err != nil {
		return 0, errors.Wrap(err, "failed to unmarshal chain id")
	}
	return uint64(chainID), nil
}
