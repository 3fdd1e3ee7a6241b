package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/types"
)

// TestClient 网关测试客户端
type TestClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewTestClient 创建新的测试客户端
func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Health 调用 GET /health
func (c *TestClient) Health(ctx context.Context) (*types.HealthResponse, error) {
	resp, err := c.makeRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}
	var out types.HealthResponse
	if err := c.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Info 调用 GET /，获取网关的合约、链和签名者信息
func (c *TestClient) Info(ctx context.Context) (*types.InfoResponse, error) {
	resp, err := c.makeRequest(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return nil, err
	}
	var out types.InfoResponse
	if err := c.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostLookup 以 EIP-3668 POST 方式发送 lookup
func (c *TestClient) PostLookup(ctx context.Context, sender, data string) (*types.LookupResponse, error) {
	resp, err := c.makeRequest(ctx, http.MethodPost, "/", &types.PostLookupPayload{
		Sender: &sender,
		Data:   &data,
	})
	if err != nil {
		return nil, err
	}
	var out types.LookupResponse
	if err := c.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLookup 以 "{sender}/{data}.json" URL 模板发送 lookup
func (c *TestClient) GetLookup(ctx context.Context, sender, data string) (*types.LookupResponse, error) {
	resp, err := c.makeRequest(ctx, http.MethodGet, "/"+sender+"/"+data+".json", nil)
	if err != nil {
		return nil, err
	}
	var out types.LookupResponse
	if err := c.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// makeRequest 发送 HTTP 请求
func (c *TestClient) makeRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// parseResponse 解析 HTTP 响应
func (c *TestClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
