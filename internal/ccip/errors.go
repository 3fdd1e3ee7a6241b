package ccip

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a gateway failure so the transport layer can pick a status code
// without inspecting messages.
type Kind int

const (
	// KindDecode marks a malformed lookup payload or call data.
	KindDecode Kind = iota
	// KindValidation marks a policy violation (wrong contract, chain, parent, label or expiry).
	KindValidation
	// KindAuthorization marks a subject that is not permitted to hold the name.
	KindAuthorization
	// KindService marks an internal failure (signing, configuration).
	KindService
	// KindUpstream marks a failed or timed out dependency call.
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindService:
		return "service"
	case KindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// Error is returned by every stage of the pipeline. Msg is safe to show to callers,
// Err carries the internal cause and is only ever logged.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func decodeErr(err error, format string, args ...interface{}) *Error {
	return newError(KindDecode, err, format, args...)
}

func validationErr(format string, args ...interface{}) *Error {
	return newError(KindValidation, nil, format, args...)
}

func authorizationErr(format string, args ...interface{}) *Error {
	return newError(KindAuthorization, nil, format, args...)
}

func serviceErr(err error, format string, args ...interface{}) *Error {
	return newError(KindService, err, format, args...)
}

func upstreamErr(err error, format string, args ...interface{}) *Error {
	return newError(KindUpstream, err, format, args...)
}

// KindOf reports the kind of err. Errors that did not originate in the pipeline are
// treated as service failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindService
}

// PublicMessage returns the caller-facing message for err.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal error"
}
