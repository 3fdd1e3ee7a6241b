package gateway

import (
	"net/http"
	"strings"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/SafeMPC/subname-gateway/internal/types"
	"github.com/SafeMPC/subname-gateway/internal/util"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/labstack/echo/v4"
)

func GetInfoRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/", getInfoHandler(s))
}

func getInfoHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		cfg := s.Gateway.Config()

		response := &types.InfoResponse{
			Service:          s.Config.Gateway.ServiceName,
			ParentDomain:     cfg.ParentDomain,
			ParentNode:       cfg.ParentNode.Hex(),
			ChainID:          cfg.ChainID,
			ContractAddress:  strings.ToLower(cfg.ContractAddress.Hex()),
			Signer:           strings.ToLower(s.Gateway.Signer().Hex()),
			LookupSelector:   hexutil.Encode(ccip.LookupSelector()),
			CallbackSelector: hexutil.Encode(ccip.CallbackSelector()),
			Routes:           make([]*types.RouteInfo, 0, len(s.Router.Routes)),
		}
		if cfg.IdentityRegistry != (common.Address{}) {
			response.IdentityRegistry = strings.ToLower(cfg.IdentityRegistry.Hex())
		}
		for _, r := range s.Router.Routes {
			response.Routes = append(response.Routes, &types.RouteInfo{Method: r.Method, Path: r.Path})
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
