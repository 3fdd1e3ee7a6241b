package httperrors

import (
	"net/http"

	"github.com/SafeMPC/subname-gateway/internal/types"
)

var (
	ErrServiceUnavailable = NewHTTPError(http.StatusServiceUnavailable, types.PublicHTTPErrorTypeServiceUnavailable, "Service unavailable.")
)
