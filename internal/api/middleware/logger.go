package middleware

import (
	"context"
	"time"

	"github.com/SafeMPC/subname-gateway/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type LoggerConfig struct {
	Skipper middleware.Skipper
	Level   zerolog.Level
}

var DefaultLoggerConfig = LoggerConfig{
	Skipper: middleware.DefaultSkipper,
	Level:   zerolog.InfoLevel,
}

// Logger attaches a request scoped zerolog logger (request id, method, path) to the
// request context and logs one line per finished request.
func Logger() echo.MiddlewareFunc {
	return LoggerWithConfig(DefaultLoggerConfig)
}

func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultLoggerConfig.Skipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			res := c.Response()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}

			l := log.With().
				Str("id", id).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()

			ctx := l.WithContext(req.Context())
			ctx = context.WithValue(ctx, util.CTXKeyRequestID, id)
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			l.WithLevel(config.Level).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Str("remote_ip", c.RealIP()).
				Dur("duration_ms", time.Since(start)).
				Msg("http_request")

			return nil
		}
	}
}
