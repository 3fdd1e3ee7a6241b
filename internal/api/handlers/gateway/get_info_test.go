package gateway_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/SafeMPC/subname-gateway/internal/test"
	"github.com/SafeMPC/subname-gateway/internal/types"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.InfoResponse
		test.ParseResponseAndValidate(t, res, &response)

		assert.Equal(t, "subname-gateway-test", response.Service)
		assert.Equal(t, test.ParentDomain, response.ParentDomain)
		assert.Equal(t, ccip.NameHash(test.ParentDomain).Hex(), response.ParentNode)
		assert.Equal(t, test.ChainID, response.ChainID)
		assert.Equal(t, strings.ToLower(test.ContractAddress), response.ContractAddress)
		assert.Equal(t, strings.ToLower(test.RegistryAddress), response.IdentityRegistry)
		assert.Equal(t, strings.ToLower(test.SignerAddress), response.Signer)
		assert.Equal(t, hexutil.Encode(ccip.LookupSelector()), response.LookupSelector)
		assert.Equal(t, hexutil.Encode(ccip.CallbackSelector()), response.CallbackSelector)

		paths := make([]string, 0, len(response.Routes))
		for _, r := range response.Routes {
			paths = append(paths, r.Method+" "+r.Path)
		}
		assert.Contains(t, paths, "POST /")
		assert.Contains(t, paths, "GET /:sender/:data")
	})
}
