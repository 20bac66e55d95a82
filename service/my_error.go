package service

import (
	"errors"
	"strings"
)

// Error codes carried by MyError. HTTP status mapping lives in http_error.go.
const (
	// ErrInternalServerError covers local failures such as an unwritable hosts file or a cache outage.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means the requested key holds nothing, e.g. no snapshot was published yet.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means the request did not match the API contract.
	ErrBadParameter = "bad_parameter"
	// ErrUpstream means the metrics backend could not be queried or answered with garbage.
	ErrUpstream = "upstream_error"
)

// MyError is a coded error. Message is safe to show to API consumers, Inner is not.
type MyError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Inner   error  `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{Code: code, Message: message, Inner: inner}
}

// coded returns the first MyError found in inner's chain, so the code set
// closest to the failure wins, or a new MyError with code.
func coded(code, message string, inner error) *MyError {
	if e := ToMyError(inner); e != nil {
		return e
	}
	return NewMyError(code, message, inner)
}

func NewInternalServerError(message string, inner error) *MyError {
	return coded(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *MyError {
	return coded(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *MyError {
	return coded(ErrBadParameter, message, inner)
}

func NewUpstreamError(message string, inner error) *MyError {
	return coded(ErrUpstream, message, inner)
}

func (e MyError) Error() string {
	var b strings.Builder
	b.WriteString(e.Code)
	b.WriteByte(' ')
	b.WriteString(e.Message)
	if e.Inner != nil {
		b.WriteString(": ")
		b.WriteString(e.Inner.Error())
	}
	return b.String()
}

func (e MyError) Unwrap() error {
	return e.Inner
}

// ToMyError returns the first MyError in err's chain, or nil.
func ToMyError(err error) *MyError {
	var e *MyError
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// ToMyErrorCode returns the code of the first MyError in err's chain, or "".
func ToMyErrorCode(err error) string {
	if e := ToMyError(err); e != nil {
		return e.Code
	}
	return ""
}

func IsMyError(err error, code string) bool {
	return ToMyErrorCode(err) == code && code != ""
}

func IsInternalServerError(err error) bool { return IsMyError(err, ErrInternalServerError) }

func IsEntityNotFoundError(err error) bool { return IsMyError(err, ErrEntityNotFound) }

func IsBadParameterError(err error) bool { return IsMyError(err, ErrBadParameter) }

func IsUpstreamError(err error) bool { return IsMyError(err, ErrUpstream) }
