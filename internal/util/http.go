package util

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"
)

const maxBodyBytes = 1 << 20

// BindAndValidateBody strictly decodes the JSON request body into v (unknown fields and
// trailing content are rejected) and validates it. Returned errors are *echo.HTTPError
// or the go-openapi validation error so the error handler can render them.
func BindAndValidateBody(c echo.Context, v runtime.Validatable) error {
	body := http.MaxBytesReader(c.Response(), c.Request().Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		LogFromEchoContext(c).Debug().Err(err).Msg("Failed to decode request body")
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body: trailing data")
	}

	if err := v.Validate(strfmt.Default); err != nil {
		LogFromEchoContext(c).Debug().Err(err).Msg("Failed to validate request body")
		return err
	}
	return nil
}

// BindAndValidatePathParams binds the route parameters into v and validates them.
func BindAndValidatePathParams(c echo.Context, v runtime.Validatable) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindPathParams(c, v); err != nil {
		LogFromEchoContext(c).Debug().Err(err).Msg("Failed to bind path params")
		return err
	}

	if err := v.Validate(strfmt.Default); err != nil {
		LogFromEchoContext(c).Debug().Err(err).Msg("Failed to validate path params")
		return err
	}
	return nil
}

// ValidateAndReturn validates v before writing it as JSON with the given status code.
func ValidateAndReturn(c echo.Context, code int, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		return err
	}
	return c.JSON(code, v)
}
