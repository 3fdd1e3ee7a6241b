package httperrors

import (
	"net/http"

	"github.com/SafeMPC/subname-gateway/internal/ccip"
	"github.com/SafeMPC/subname-gateway/internal/types"
)

// NewFromGateway maps a lookup pipeline error to its HTTP representation. Only the
// public message of err is exposed.
func NewFromGateway(err error) *HTTPError {
	msg := ccip.PublicMessage(err)

	var he *HTTPError
	switch ccip.KindOf(err) {
	case ccip.KindDecode:
		he = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeDecodeFailed, msg)
	case ccip.KindValidation:
		he = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeValidationFailed, msg)
	case ccip.KindAuthorization:
		he = NewHTTPError(http.StatusForbidden, types.PublicHTTPErrorTypeNotAuthorized, msg)
	case ccip.KindUpstream:
		he = NewHTTPError(http.StatusBadGateway, types.PublicHTTPErrorTypeUpstreamFailed, msg)
	default:
		he = NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeSigningFailed, msg)
	}
	return he.Wrap(err)
}
