package relay

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// DefaultFailureCode is used when a failure carries no code of its own.
const DefaultFailureCode = "InternalError"

// Error is a failure with an optional application code. Handlers and
// middleware return it when the caller should see a specific code in the
// normalized response.
type Error struct {
	// Code is a string or numeric application code. Nil falls back to
	// DefaultFailureCode during normalization.
	Code any

	// Message is the user-facing failure description.
	Message string

	// Stack is the call stack captured when the error was created.
	// Exposed only when the router runs in debug mode.
	Stack string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// NewError creates an Error with the given code and message, capturing
// the current call stack.
func NewError(code any, message string) *Error {
	return &Error{Code: code, Message: message, Stack: string(debug.Stack())}
}

// Errorf creates an Error with a formatted message.
func Errorf(code any, format string, args ...any) *Error {
	return NewError(code, fmt.Sprintf(format, args...))
}

// Failure is the normalized response for any failed invocation. It is the
// resolved value of Serve, never a thrown error.
type Failure struct {
	Code    any     `json:"code"`
	Message any     `json:"message"`
	Stack   *string `json:"stack,omitempty"`
}

// normalize converts a caught failure into the Failure shape: the error's
// own code and message when it is an *Error, the default code and the
// error text otherwise. The stack is attached only in debug mode, and is
// empty when the failure carries none.
func normalize(err error, debugMode bool) *Failure {
	f := &Failure{Code: DefaultFailureCode, Message: err.Error()}
	stack := ""
	var e *Error
	if errors.As(err, &e) {
		if e.Code != nil {
			f.Code = e.Code
		}
		f.Message = e.Message
		stack = e.Stack
	}
	if debugMode {
		f.Stack = &stack
	}
	return f
}
