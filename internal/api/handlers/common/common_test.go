package common_test

import (
	"context"
	"math/big"
	"net/http"
	"strings"
	"testing"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/api/httperrors"
	"github.com/SafeMPC/subname-gateway/internal/test"
	"github.com/SafeMPC/subname-gateway/internal/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHealth(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/health", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.HealthResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.Equal(t, "ok", *response.Status)
		assert.Equal(t, "subname-gateway-test", response.Service)
		assert.Equal(t, test.ChainID, response.ChainID)
		assert.Equal(t, strings.ToLower(test.ContractAddress), response.ContractAddress)
	})
}

func TestGetHealthy(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/healthy", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.Equal(t, "Ready.", res.Body.String())
	})
}

func TestGetReady(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.Equal(t, "Ready.", res.Body.String())
	})
}

// unreachableRegistry resolves every agent but fails the RPC endpoint ping.
type unreachableRegistry struct{}

func (unreachableRegistry) OwnerOf(ctx context.Context, agentID *big.Int) (common.Address, error) {
	return common.HexToAddress(test.OwnerAddress), nil
}

func (unreachableRegistry) Ping(ctx context.Context) error {
	return errors.New("connection refused")
}

func TestGetReadyRegistryUnavailable(t *testing.T) {
	config := test.DefaultTestConfig()
	config.Gateway.RegistryCheck = true

	test.WithTestServerOptions(t, config, test.ServerOptions{OwnerResolver: unreachableRegistry{}}, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/ready", nil, nil)
		test.RequireHTTPError(t, res, httperrors.ErrServiceUnavailable)

		// liveness does not depend on the registry
		res = test.PerformRequest(t, s, "GET", "/-/healthy", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
	})
}

func TestGetMetrics(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/", test.LookupPayload(t, test.LookupRequest("metrics-test")), nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "GET", "/metrics", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		body := res.Body.String()
		assert.Contains(t, body, `subname_gateway_lookups_total{outcome="ok"} 1`)
		assert.Contains(t, body, `subname_gateway_info{`)
		assert.Contains(t, body, "subname_gateway_echo_requests_total")
	})
}

func TestCORSPreflight(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		headers := http.Header{}
		headers.Set("Origin", "https://app.example")
		headers.Set("Access-Control-Request-Method", http.MethodPost)

		res := test.PerformRequest(t, s, "OPTIONS", "/", nil, headers)
		require.Equal(t, http.StatusNoContent, res.Result().StatusCode)
		assert.Equal(t, "*", res.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCORSPreflightAllowsRequestedHeaders(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		headers := http.Header{}
		headers.Set("Origin", "https://app.example")
		headers.Set("Access-Control-Request-Method", http.MethodPost)
		headers.Set("Access-Control-Request-Headers", "Content-Type, X-Client-Version")

		res := test.PerformRequest(t, s, "OPTIONS", "/", nil, headers)
		require.Equal(t, http.StatusNoContent, res.Result().StatusCode)
		assert.Equal(t, "Content-Type, X-Client-Version", res.Header().Get("Access-Control-Allow-Headers"))
	})
}
