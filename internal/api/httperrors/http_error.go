package httperrors

import (
	"fmt"
	"net/http"

	"github.com/SafeMPC/subname-gateway/internal/types"
	"github.com/labstack/echo/v4"
)

// HTTPError is the body of every non-2xx response. Title is rendered as "error" so
// callers only need to read a single field. Internal is logged and never serialized.
type HTTPError struct {
	Code     int                       `json:"status"`
	Type     types.PublicHTTPErrorType `json:"type"`
	Title    string                    `json:"error"`
	Detail   string                    `json:"detail,omitempty"`
	Internal error                     `json:"-"`
}

func NewHTTPError(code int, errorType types.PublicHTTPErrorType, title string) *HTTPError {
	return &HTTPError{
		Code:  code,
		Type:  errorType,
		Title: title,
	}
}

func NewHTTPErrorWithDetail(code int, errorType types.PublicHTTPErrorType, title string, detail string) *HTTPError {
	return &HTTPError{
		Code:   code,
		Type:   errorType,
		Title:  title,
		Detail: detail,
	}
}

func NewFromEcho(e *echo.HTTPError) *HTTPError {
	title := http.StatusText(e.Code)
	if msg, ok := e.Message.(string); ok && msg != "" {
		title = msg
	}
	return &HTTPError{
		Code:     e.Code,
		Type:     types.PublicHTTPErrorTypeGeneric,
		Title:    title,
		Internal: e.Internal,
	}
}

// Wrap attaches the internal cause to e and returns it.
func (e *HTTPError) Wrap(err error) *HTTPError {
	e.Internal = err
	return e
}

func (e *HTTPError) Error() string {
	var msg string
	if len(e.Detail) > 0 {
		msg = fmt.Sprintf("HTTPError %d (%s): %s - %s", e.Code, e.Type, e.Title, e.Detail)
	} else {
		msg = fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
	}
	if e.Internal != nil {
		msg = fmt.Sprintf("%s, %v", msg, e.Internal)
	}
	return msg
}

func (e *HTTPError) Unwrap() error {
	return e.Internal
}
