package common

import (
	"context"
	"net/http"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/api/httperrors"
	"github.com/SafeMPC/subname-gateway/internal/util"
	"github.com/labstack/echo/v4"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// Liveness: the signing key still round trips.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), s.Config.Management.LivenessTimeout)
		defer cancel()

		if errs := s.CheckLiveness(ctx); len(errs) > 0 {
			log := util.LogFromContext(ctx)
			for _, err := range errs {
				log.Error().Err(err).Msg("Liveness check failed")
			}
			return httperrors.ErrServiceUnavailable
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
