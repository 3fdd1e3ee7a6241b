package util

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	CTXKeyRequestID contextKey = "request_id"
)

// RequestIDFromContext returns the request id stored in ctx, or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(CTXKeyRequestID).(string)
	if !ok {
		return ""
	}
	return id
}

// LogFromContext returns a request-specific zerolog instance using the provided context.
// The returned logger will have the request ID as well as some other value predefined.
// If no logger is associated with the context provided, the global zerolog instance
// will be returned instead - this function will _always_ return a valid (enabled) logger.
// Should you ever need to force a disabled logger for a context, use `zerolog.Nop()` and
// `logger.WithContext(ctx)` to store it in the context.
func LogFromContext(ctx context.Context) *zerolog.Logger {
	l := log.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		if ShouldDisableLogger(ctx) {
			return l
		}
		l = &log.Logger
	}
	return l
}

// LogFromEchoContext returns a request-specific zerolog instance using the echo.Context of the request.
func LogFromEchoContext(c echo.Context) *zerolog.Logger {
	return LogFromContext(c.Request().Context())
}

type disableLoggerKey struct{}

// DisableLogger stores a flag in ctx so LogFromContext returns the disabled logger
// instead of falling back to the global one.
func DisableLogger(ctx context.Context, shouldDisable bool) context.Context {
	return context.WithValue(ctx, disableLoggerKey{}, shouldDisable)
}

func ShouldDisableLogger(ctx context.Context) bool {
	s, ok := ctx.Value(disableLoggerKey{}).(bool)
	if !ok {
		return false
	}
	return s
}
