package common

import (
	"net/http"
	"strings"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/types"
	"github.com/SafeMPC/subname-gateway/internal/util"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func GetHealthRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/health", getHealthHandler(s))
}

// Reports static gateway identity only, load balancers should use /-/ready.
func getHealthHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		cfg := s.Gateway.Config()

		response := &types.HealthResponse{
			Status:          swag.String("ok"),
			Service:         s.Config.Gateway.ServiceName,
			ChainID:         cfg.ChainID,
			ContractAddress: strings.ToLower(cfg.ContractAddress.Hex()),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
