package router

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/SafeMPC/subname-gateway/internal/api"
	"github.com/SafeMPC/subname-gateway/internal/api/handlers"
	"github.com/SafeMPC/subname-gateway/internal/api/httperrors"
	"github.com/SafeMPC/subname-gateway/internal/api/middleware"
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.HTTPErrorHandler = httperrors.HTTPErrorHandlerWithConfig(httperrors.HTTPErrorHandlerConfig{
		HideInternalServerErrorDetails: s.Config.Echo.HideInternalServerErrorDetails,
	})

	// ---
	// General middleware
	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
			Generator: uuid.NewString,
		}))
	} else {
		log.Warn().Msg("Disabling request ID middleware due to environment config")
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Level: s.Config.Logger.RequestLevel,
		}))
	} else {
		log.Warn().Msg("Disabling logger middleware due to environment config")
	}

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.RecoverWithConfig(echoMiddleware.RecoverConfig{
			DisableStackAll:   true,
			DisablePrintStack: !s.Config.Echo.Debug,
		}))
	} else {
		log.Warn().Msg("Disabling recover middleware due to environment config")
	}

	// Lookups come from arbitrary on-chain clients and browsers.
	if s.Config.Echo.EnableCORSMiddleware {
		s.Echo.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		}))
	} else {
		log.Warn().Msg("Disabling CORS middleware due to environment config")
	}

	if s.Config.Echo.EnablePrometheusMiddleware {
		s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "subname_gateway",
			Registerer: s.Metrics.Registry,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
	}

	s.Router = &api.Router{
		Routes:     nil,
		Root:       s.Echo.Group(""),
		Management: s.Echo.Group("/-"),
	}

	handlers.AttachAllRoutes(s)

	gw := s.Gateway.Config()
	s.Metrics.SetInfo(s.Config.Gateway.ServiceName, strconv.FormatUint(gw.ChainID, 10), strings.ToLower(gw.ContractAddress.Hex()))
}
