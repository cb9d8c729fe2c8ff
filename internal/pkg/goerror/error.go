package goerror

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Type classifies errors into high-level buckets used by the harness.
type Type int

const (
	// TypeInternal represents failures inside the harness itself.
	TypeInternal Type = iota
	// TypeValidation represents invalid input given to the harness (config, urls).
	TypeValidation
	// TypeTransport represents failures before any HTTP status was received.
	TypeTransport
	// TypeApplication represents a response whose status is not the expected one.
	TypeApplication
)

// String returns the string representation of the error type.
func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeTransport:
		return "ERROR_TYPE_TRANSPORT"
	case TypeApplication:
		return "ERROR_TYPE_APPLICATION"
	case TypeInternal:
		return "ERROR_TYPE_INTERNAL"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier for the failure reason.
type Code int

const (
	// CodeInternal represents an internal or unspecified error.
	CodeInternal Code = iota
	// CodeInvalidInput indicates invalid harness input.
	CodeInvalidInput
	// CodeConnection indicates DNS failures, refused or reset connections.
	CodeConnection
	// CodeTimeout indicates the request deadline was exceeded.
	CodeTimeout
	// CodeCanceled indicates the caller canceled the request.
	CodeCanceled
	// CodeUnexpectedStatus indicates a response outside the expected status set.
	CodeUnexpectedStatus
	// CodeDecode indicates a response body that does not match the expected shape.
	CodeDecode
)

// String returns the string representation of the error code.
func (c Code) String() string {
	switch c {
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeConnection:
		return "ERROR_CODE_CONNECTION"
	case CodeTimeout:
		return "ERROR_CODE_TIMEOUT"
	case CodeCanceled:
		return "ERROR_CODE_CANCELED"
	case CodeUnexpectedStatus:
		return "ERROR_CODE_UNEXPECTED_STATUS"
	case CodeDecode:
		return "ERROR_CODE_DECODE"
	case CodeInternal:
		return "ERROR_CODE_INTERNAL"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error is a structured error used across the harness.
//
// It can wrap an underlying error while also carrying a message, a high-level
// type, a stable code and, for application errors, the received status code.
type Error struct {
	err        error
	msg        string
	errType    Type
	code       Code
	statusCode int
	fields     map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.msg != "" && e.err != nil {
		return e.msg + ": " + e.err.Error()
	}

	if e.msg != "" {
		return e.msg
	}

	if e.err != nil {
		return e.err.Error()
	}

	switch e.errType {
	case TypeValidation:
		return "Validation violation"
	case TypeTransport:
		return "Transport failure"
	case TypeApplication:
		return "Unexpected response"
	default:
		return "Internal error"
	}
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Status: %d, Message: %s, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.statusCode,
		e.msg,
		e.err,
	)
}

// Msg returns the error message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// StatusCode returns the HTTP status that caused an application error, 0 otherwise.
func (e *Error) StatusCode() int {
	return e.statusCode
}

// Fields returns validation errors (field to message map), if any.
func (e *Error) Fields() map[string]string {
	return e.fields
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

func newError(err error, msg string, et Type, code Code) *Error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewInternal creates an internal error wrapping err.
func NewInternal(err error, msg string) error {
	return newError(err, msg, TypeInternal, CodeInternal)
}

// NewInvalidInput creates a validation error. kv are optional field/message pairs.
func NewInvalidInput(err error, msg string, kv ...string) error {
	e := newError(err, msg, TypeValidation, CodeInvalidInput)
	if len(kv) >= 2 {
		e.fields = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			e.fields[kv[i]] = kv[i+1]
		}
	}

	return e
}

// NewTransport classifies err (returned by an http.Client) into a transport error.
func NewTransport(err error) error {
	code := CodeConnection

	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		code = CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = CodeTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		code = CodeTimeout
	}

	msg := "request failed"
	var uerr *url.Error
	if errors.As(err, &uerr) {
		msg = uerr.Op + " " + uerr.URL + " failed"
	}

	return newError(err, msg, TypeTransport, code)
}

// NewUnexpectedStatus creates an application error for a received status code.
func NewUnexpectedStatus(status int) error {
	e := newError(nil, fmt.Sprintf("Unexpected status code: %d", status), TypeApplication, CodeUnexpectedStatus)
	e.statusCode = status

	return e
}

// NewDecode creates an error for a body that does not fit the expected shape.
func NewDecode(err error, status int) error {
	e := newError(err, "decode response body", TypeApplication, CodeDecode)
	e.statusCode = status

	return e
}

// IsTransport reports whether err is (or wraps) a transport error.
func IsTransport(err error) bool {
	var gerr *Error
	return errors.As(err, &gerr) && gerr.errType == TypeTransport
}
