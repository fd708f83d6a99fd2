package httperr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// BusinessError is the error every use case returns to the HTTP layer.
// Message is safe to show to the caller; Err is the underlying cause.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error

	// stack is where Internal was called, recorded outside production.
	stack []byte
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func newErr(kind Kind, code, message string) error {
	return &BusinessError{Kind: kind, Code: code, Message: message}
}

func InvalidInput(code, message string) error {
	return newErr(KindInvalidInput, code, message)
}

func Unauthenticated(code, message string) error {
	return newErr(KindUnauthenticated, code, message)
}

func Forbidden(code, message string) error {
	return newErr(KindForbidden, code, message)
}

func NotFound(code, message string) error {
	return newErr(KindNotFound, code, message)
}

func Conflict(code, message string) error {
	return newErr(KindConflict, code, message)
}

func Internal(code string, err error) error {
	be := &BusinessError{Kind: KindInternal, Code: code, Message: "Server error", Err: err}
	if exposeStack.Load() {
		be.stack = debug.Stack()
	}
	return be
}

// KindOf reports the kind of err; anything that is not a BusinessError is internal.
func KindOf(err error) Kind {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

func IsBusiness(err error, code string) bool {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
