package gateway_test

import (
	"net/http"
	"testing"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/api/httperrors"
	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/SafeMPC/subname-gateway/internal/test"
	"github.com/SafeMPC/subname-gateway/internal/types"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLookup(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		req := test.LookupRequest("testagent1234")
		callData := test.LookupCallData(t, req)

		for _, path := range []string{
			"/" + test.ContractAddress + "/" + hexutil.Encode(callData) + ".json",
			"/" + test.ContractAddress + "/" + hexutil.Encode(callData),
		} {
			res := test.PerformRequest(t, s, "GET", path, nil, nil)
			require.Equal(t, http.StatusOK, res.Result().StatusCode, path)

			var response types.LookupResponse
			test.ParseResponseAndValidate(t, res, &response)

			data, err := hexutil.Decode(*response.Data)
			require.NoError(t, err)

			result, err := ccip.VerifyResponse(test.VerifierConfig(), data, callData, req.ExtraData, s.Clock.Now())
			require.NoError(t, err)
			assert.Equal(t, req.Owner, result.Owner)
		}
	})
}

func TestPostLookupTemplate(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		req := test.LookupRequest("testagent1234")
		callData := test.LookupCallData(t, req)

		res := test.PerformRequest(t, s, "POST", "/"+test.ContractAddress+"/"+hexutil.Encode(callData)+".json", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.LookupResponse
		test.ParseResponseAndValidate(t, res, &response)
		assert.Equal(t, "1", response.Meta.AgentID)
	})
}

func TestGetLookupInvalidData(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/"+test.ContractAddress+"/0xzz.json", nil, nil)
		test.RequireHTTPError(t, res, httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidPayload, "Invalid request payload."))
	})
}

func TestGetLookupUnknownSelector(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/"+test.ContractAddress+"/0xdeadbeef.json", nil, nil)
		test.RequireHTTPError(t, res, httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeDecodeFailed, "unknown function selector 0xdeadbeef"))
	})
}

func TestGetLookupRepeatedSuffix(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		req := test.LookupRequest("testagent1234")
		callData := test.LookupCallData(t, req)

		res := test.PerformRequest(t, s, "GET", "/"+test.ContractAddress+"/"+hexutil.Encode(callData)+".json.json", nil, nil)
		test.RequireHTTPError(t, res, httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidPayload, "Invalid request payload."))
	})
}

func TestGetLookupInvalidDataIsCounted(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/"+test.ContractAddress+"/0xzz.json", nil, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "GET", "/metrics", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), `subname_gateway_lookups_total{outcome="decode"} 1`)
	})
}
