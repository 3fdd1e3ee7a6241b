package common

import (
	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
)

func GetMetricsRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: s.Metrics.Registry,
	}))
}
