package envelope

import (
	"errors"
	"fmt"
)

// Error codes reported by the envelope engine and its collaborators.
const (
	// ErrCodeMissingSecret indicates no non-empty secret was supplied.
	ErrCodeMissingSecret = "GGLAS_MISSING_SECRET"

	// ErrCodeMissingPayloadSource indicates neither a payload file nor payload flags were given.
	ErrCodeMissingPayloadSource = "GGLAS_MISSING_PAYLOAD_SOURCE"

	// ErrCodeMalformedToken indicates the link is not a parsable, complete token.
	ErrCodeMalformedToken = "GGLAS_MALFORMED_TOKEN"

	// ErrCodeSignatureInvalid indicates the signature does not match the payload.
	ErrCodeSignatureInvalid = "GGLAS_SIGNATURE_INVALID"

	// ErrCodeExpired indicates current time > exp.
	ErrCodeExpired = "GGLAS_EXPIRED"

	// ErrCodeInvalidExpiry indicates an expiry timestamp could not be parsed on issuance.
	ErrCodeInvalidExpiry = "GGLAS_INVALID_EXPIRY"

	// ErrCodeMalformedPayload indicates a payload file could not be decoded.
	ErrCodeMalformedPayload = "GGLAS_MALFORMED_PAYLOAD"
)

// Error represents an envelope failure with a stable error code.
type Error struct {
	// Code is one of the GGLAS_* error codes.
	Code string

	// Message is a short description for logs.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches a target error code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// NewError creates a new Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WrapError creates a new Error that wraps an underlying error.
func WrapError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Sentinel errors for use with errors.Is.
var (
	ErrMissingSecret        = NewError(ErrCodeMissingSecret, "no secret resolved")
	ErrMissingPayloadSource = NewError(ErrCodeMissingPayloadSource, "no payload source given")
	ErrMalformedToken       = NewError(ErrCodeMalformedToken, "token is malformed")
	ErrSignatureInvalid     = NewError(ErrCodeSignatureInvalid, "signature verification failed")
	ErrExpired              = NewError(ErrCodeExpired, "payload has expired")
	ErrInvalidExpiry        = NewError(ErrCodeInvalidExpiry, "expiry is not a valid timestamp")
	ErrMalformedPayload     = NewError(ErrCodeMalformedPayload, "payload is malformed")
)

// AsError checks if err is an Error and returns it if so.
func AsError(err error) (*Error, bool) {
	var envErr *Error
	if errors.As(err, &envErr) {
		return envErr, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an Error, or returns empty string.
func GetErrorCode(err error) string {
	if envErr, ok := AsError(err); ok {
		return envErr.Code
	}
	return ""
}
