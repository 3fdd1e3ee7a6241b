package gateway

import (
	"strings"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/SafeMPC/subname-gateway/internal/types"
	"github.com/SafeMPC/subname-gateway/internal/util"
	"github.com/labstack/echo/v4"
)

func GetLookupRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/:sender/:data", lookupTemplateHandler(s))
}

// Clients POST to URL templates with {data} in them as well, the body is ignored then.
func PostLookupTemplateRoute(s *api.Server) *echo.Route {
	return s.Router.Root.POST("/:sender/:data", lookupTemplateHandler(s))
}

// Serves the "{sender}/{data}.json" URL template, the suffix is optional.
func lookupTemplateHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		var params types.GetLookupParams
		if err := util.BindAndValidatePathParams(c, &params); err != nil {
			s.Metrics.ObserveLookup(ccip.KindDecode.String(), time.Since(start))
			return err
		}

		return resolveLookup(c, s, params.Sender, strings.TrimSuffix(params.Data, ".json"), start)
	}
}
