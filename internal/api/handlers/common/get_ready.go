package common

import (
	"net/http"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/api/httperrors"
	"github.com/SafeMPC/subname-gateway/internal/util"
	"github.com/labstack/echo/v4"
)

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// Readiness: liveness plus the identity registry RPC endpoint if the registry check is enabled.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if !s.Ready() {
			util.LogFromContext(ctx).Warn().Msg("Server is not fully initialized")
			return httperrors.ErrServiceUnavailable
		}

		if errs := s.CheckReadiness(ctx); len(errs) > 0 {
			log := util.LogFromContext(ctx)
			for _, err := range errs {
				log.Warn().Err(err).Msg("Readiness check failed")
			}
			return httperrors.ErrServiceUnavailable
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
