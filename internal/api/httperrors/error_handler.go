package httperrors

import (
	"net/http"

	"github.com/SafeMPC/subname-gateway/internal/types"
	"github.com/SafeMPC/subname-gateway/internal/util"
	oerrors "github.com/go-openapi/errors"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type HTTPErrorHandlerConfig struct {
	// HideInternalServerErrorDetails keeps the internal cause of 5xx responses out of
	// the "detail" field.
	HideInternalServerErrorDetails bool
}

// HTTPErrorHandlerWithConfig renders every error returned by a handler as a JSON
// HTTPError. Anything that is not already an HTTPError becomes a generic 500 so no
// internal detail leaks to the caller unless config allows it.
func HTTPErrorHandlerWithConfig(config HTTPErrorHandlerConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		handleError(config, err, c)
	}
}

func handleError(config HTTPErrorHandlerConfig, err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		he  *HTTPError
		ee  *echo.HTTPError
		ce  *oerrors.CompositeError
		ove *oerrors.Validation
	)
	switch {
	case errors.As(err, &he):
	case errors.As(err, &ee):
		he = NewFromEcho(ee)
	case errors.As(err, &ce), errors.As(err, &ove):
		he = NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidPayload, "Invalid request payload.", err.Error())
	default:
		he = NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusInternalServerError))
		he.Internal = err
	}

	if !config.HideInternalServerErrorDetails && he.Code >= http.StatusInternalServerError && he.Internal != nil && he.Detail == "" {
		withDetail := *he
		withDetail.Detail = he.Internal.Error()
		he = &withDetail
	}

	log := util.LogFromEchoContext(c)
	event := log.Debug()
	if he.Code >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(he.Internal).Int("status", he.Code).Str("type", string(he.Type)).Msg(he.Title)

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, he)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to write error response")
	}
}
