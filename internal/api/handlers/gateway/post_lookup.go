package gateway

import (
	"time"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/SafeMPC/subname-gateway/internal/types"
	"github.com/SafeMPC/subname-gateway/internal/util"
	"github.com/labstack/echo/v4"
)

func PostLookupRoute(s *api.Server) *echo.Route {
	return s.Router.Root.POST("/", postLookupHandler(s))
}

func postLookupHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		var body types.PostLookupPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			s.Metrics.ObserveLookup(ccip.KindDecode.String(), time.Since(start))
			return err
		}

		return resolveLookup(c, s, *body.Sender, *body.Data, start)
	}
}
