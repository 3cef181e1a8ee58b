package response

import (
	"ctchen222/blog-api/internal/validator"
	"errors"
	"net/http"
)

// Kind classifies a failed request.
type Kind int

const (
	KindInternal       Kind = iota // hashing/signing/encoding failures; never detailed to clients
	KindExtraction                 // a required header is missing or malformed, or the body is unreadable
	KindValidation                 // field-level violations
	KindAuthentication             // missing, malformed, badly signed or expired token
	KindAuthorization              // valid token, but not the owner
	KindNotFound
)

// Status is the HTTP status code of the kind. Authorization failures are
// deliberately reported exactly like authentication failures.
func (k Kind) Status() int {
	switch k {
	case KindExtraction, KindValidation:
		return http.StatusBadRequest
	case KindAuthentication, KindAuthorization:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindExtraction:
		return "extraction"
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is a request failure with its kind. Message is only exposed for
// extraction failures and Fields only for validation failures.
type Error struct {
	Kind    Kind
	Message string
	Fields  validator.Errors
	Base    error
}

func NewExtractionError(message string) *Error {
	return &Error{Kind: KindExtraction, Message: message}
}

func NewValidationError(fields validator.Errors) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

func NewAuthenticationError(base error) *Error {
	return &Error{Kind: KindAuthentication, Message: "unauthorized", Base: base}
}

func NewAuthorizationError(base error) *Error {
	return &Error{Kind: KindAuthorization, Message: "unauthorized", Base: base}
}

func NewNotFoundError(base error) *Error {
	return &Error{Kind: KindNotFound, Message: "not found", Base: base}
}

func NewInternalError(base error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Base: base}
}

// AsError returns err as an *Error, treating anything unknown as internal.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewInternalError(err)
}

func (e *Error) Error() string {
	if e.Base != nil {
		return e.Message + ": " + e.Base.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Base
}

// Is matches another *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}
