package types

// PublicHTTPErrorType is the machine readable "type" field of every error response.
type PublicHTTPErrorType string

const (
	PublicHTTPErrorTypeGeneric            PublicHTTPErrorType = "generic"
	PublicHTTPErrorTypeInvalidPayload     PublicHTTPErrorType = "INVALID_PAYLOAD"
	PublicHTTPErrorTypeDecodeFailed       PublicHTTPErrorType = "DECODE_FAILED"
	PublicHTTPErrorTypeValidationFailed   PublicHTTPErrorType = "VALIDATION_FAILED"
	PublicHTTPErrorTypeNotAuthorized      PublicHTTPErrorType = "NOT_AUTHORIZED"
	PublicHTTPErrorTypeSigningFailed      PublicHTTPErrorType = "SIGNING_FAILED"
	PublicHTTPErrorTypeUpstreamFailed     PublicHTTPErrorType = "UPSTREAM_FAILED"
	PublicHTTPErrorTypeServiceUnavailable PublicHTTPErrorType = "SERVICE_UNAVAILABLE"
)
