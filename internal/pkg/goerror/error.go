// Package goerror carries a user-facing message, a category and an HTTP
// mapping alongside the underlying cause.
package goerror

import (
	"fmt"
	"maps"
	"net/http"
)

// Type groups errors by who is at fault.
type Type int

const (
	// TypeServer is a failure on our side or in a dependency.
	TypeServer Type = iota
	// TypeBusiness is a request that breaks a domain rule.
	TypeBusiness
	// TypeValidation is a request with a bad shape or missing fields.
	TypeValidation
)

var typeNames = [...]string{
	TypeServer:     "ERROR_TYPE_SERVER",
	TypeBusiness:   "ERROR_TYPE_BUSINESS",
	TypeValidation: "ERROR_TYPE_VALIDATION",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "ERROR_TYPE_UNKNOWN"
	}
	return typeNames[t]
}

// Code decides the HTTP status of an Error.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeInvalidInput
	CodeNotFound
	CodeConflict
	CodeTooManyRequest
	CodeUnavailable
)

var codeInfo = [...]struct {
	name   string
	status int
}{
	CodeInternal:       {"ERROR_CODE_INTERNAL", http.StatusInternalServerError},
	CodeInvalidFormat:  {"ERROR_CODE_INVALID_FORMAT", http.StatusBadRequest},
	CodeInvalidInput:   {"ERROR_CODE_INVALID_INPUT", http.StatusBadRequest},
	CodeNotFound:       {"ERROR_CODE_NOT_FOUND", http.StatusNotFound},
	CodeConflict:       {"ERROR_CODE_CONFLICT", http.StatusConflict},
	CodeTooManyRequest: {"ERROR_CODE_TOO_MANY_REQUESTS", http.StatusTooManyRequests},
	CodeUnavailable:    {"ERROR_CODE_UNAVAILABLE", http.StatusServiceUnavailable},
}

func (c Code) valid() bool { return c >= 0 && int(c) < len(codeInfo) }

func (c Code) String() string {
	if !c.valid() {
		return codeInfo[CodeInternal].name
	}
	return codeInfo[c].name
}

// Error is the structured error returned by usecases and rendered by the router.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

// Error returns the cause when present so logs keep the real reason; clients
// only ever see Msg.
func (e *Error) Error() string {
	switch {
	case e.err != nil:
		return e.err.Error()
	case e.msg != "":
		return e.msg
	case e.errType == TypeValidation:
		return "Validation violation"
	case e.errType == TypeBusiness:
		return "Business rule violation"
	default:
		return "Internal error"
	}
}

// String is a verbose form for debugging.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s msg=%q cause=%v", e.errType, e.code, e.msg, e.err)
}

func (e *Error) Msg() string { return e.msg }

func (e *Error) Type() Type { return e.errType }

func (e *Error) Code() Code { return e.code }

// Fields holds per-field validation messages, used for logging only.
func (e *Error) Fields() map[string]string { return e.fields }

func (e *Error) Unwrap() error { return e.err }

// StatusCode maps Code to an HTTP status. Unknown codes are 500.
func (e *Error) StatusCode() int {
	if !e.code.valid() {
		return http.StatusInternalServerError
	}
	return codeInfo[e.code].status
}

// NewServer wraps err as a server failure. msg, when given, replaces the
// generic "Internal server error" shown to clients.
func NewServer(err error, msg ...string) error {
	e := &Error{err: err, msg: "Internal server error", errType: TypeServer, code: CodeInternal}
	if len(msg) > 0 && msg[0] != "" {
		e.msg = msg[0]
	}
	return e
}

// NewBusiness reports a broken domain rule such as a duplicate request.
func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

// NewInvalidInput reports missing or invalid fields. When err exposes
// Values() map[string]string (as validator errors do) the map is copied into
// Fields.
func NewInvalidInput(msg string, err error) error {
	e := &Error{err: err, msg: msg, errType: TypeValidation, code: CodeInvalidInput}
	if fv, ok := err.(interface{ Values() map[string]string }); ok && len(fv.Values()) > 0 {
		e.fields = maps.Clone(fv.Values())
	}
	return e
}

// NewInvalidFormat reports a body that could not be decoded.
func NewInvalidFormat(msg ...string) error {
	e := &Error{msg: "Invalid request body", errType: TypeValidation, code: CodeInvalidFormat}
	if len(msg) > 0 && msg[0] != "" {
		e.msg = msg[0]
	}
	return e
}
