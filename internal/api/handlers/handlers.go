package handlers

import (
	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/api/handlers/common"
	"github.com/SafeMPC/subname-gateway/internal/api/handlers/gateway"
	"github.com/labstack/echo/v4"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		common.GetHealthRoute(s),
		common.GetHealthyRoute(s),
		common.GetMetricsRoute(s),
		common.GetReadyRoute(s),
		gateway.GetInfoRoute(s),
		gateway.GetLookupRoute(s),
		gateway.PostLookupRoute(s),
		gateway.PostLookupTemplateRoute(s),
	}
}
