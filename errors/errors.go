package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is a classified failure: a taxonomy kind, a human message, and the
// execution-context snapshot taken when the failure was produced. It is
// created exactly once per failure and never mutated afterwards by the
// executor; With* helpers return the receiver for construction chaining.
type Error struct {
	Kind    Kind
	Message string
	Details Context
}

// New creates an Error of the given kind with the kind's default message.
func New(kind Kind) *Error {
	return &Error{Kind: kind, Message: kind.Message, Details: Context{}}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Kind.MsgID, e.Kind.Code, e.Message)
}

// WithMessage replaces the message and returns the receiver.
func (e *Error) WithMessage(msg string) *Error {
	e.Message = msg
	return e
}

// WithDetail stores one context entry and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = Context{}
	}
	e.Details[key] = value
	return e
}

// WithContext merges a snapshot of ctx into the details and returns the
// receiver. Later merges win on key conflict.
func (e *Error) WithContext(ctx Context) *Error {
	if e.Details == nil {
		e.Details = Context{}
	}
	e.Details.Merge(ctx.Clone())
	return e
}

// AsError extracts an *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether err is a classified error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}
