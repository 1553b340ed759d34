package zerror

import (
	"errors"
	"fmt"
)

// ZError is a domain error with a transport-agnostic status, a stable
// machine-readable code and a client-facing message.
type ZError struct {
	parent error
	status Status
	code   string
	msg    string
}

// NewZError builds a ZError. Codes are SCREAMING_SNAKE_CASE, e.g. INVALID_ORDER_BY.
func NewZError(parent error, status Status, code, msg string) ZError {
	return ZError{
		parent: parent,
		status: status,
		code:   code,
		msg:    msg,
	}
}

func (e ZError) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("Code=%s, Msg=%s, Parent=(%v)", e.code, e.msg, e.parent)
	}
	return fmt.Sprintf("Code=%s, Msg=%s", e.code, e.msg)
}

// WrapParent attaches an underlying error to an existing predefined ZError.
func (e ZError) WrapParent(parent error) ZError {
	if parent == nil {
		return e
	}
	e.parent = parent
	return e
}

// WithMsg returns a copy of the predefined ZError with a more specific message.
func (e ZError) WithMsg(format string, args ...any) ZError {
	e.msg = fmt.Sprintf(format, args...)
	return e
}

func (e ZError) Unwrap() error {
	return e.parent
}

// Is reports whether target is a ZError with the same code.
func (e ZError) Is(target error) bool {
	var t ZError
	if !errors.As(target, &t) {
		return false
	}
	return t.code == e.code
}

func (e ZError) Status() Status {
	return e.status
}

func (e ZError) Code() string {
	return e.code
}

func (e ZError) Msg() string {
	return e.msg
}

func NewNotFound(code, msg string) ZError {
	return NewZError(nil, StatusNotFound, code, msg)
}

func NewBadRequest(code, msg string) ZError {
	return NewZError(nil, StatusBadRequest, code, msg)
}

func NewServiceUnavailable(code, msg string) ZError {
	return NewZError(nil, StatusServiceUnavailable, code, msg)
}
