// Package apperror defines the error kinds returned by the services. Every
// business rejection is an *Error; panics are reserved for programming bugs.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers
type Kind string

// Error kinds
const (
	NotFound          Kind = "NOT_FOUND"
	AlreadyExists     Kind = "ALREADY_EXISTS"
	InvalidArgument   Kind = "INVALID_ARGUMENT"
	InvalidState      Kind = "INVALID_STATE"
	InsufficientFunds Kind = "INSUFFICIENT_FUNDS"
	Internal          Kind = "INTERNAL"
)

// Error is a classified failure. Op names the operation that failed.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Kind, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewNotFound reports that the entity with the given id does not exist
func NewNotFound(op, entity string, id any) *Error {
	return &Error{Kind: NotFound, Op: op, Message: fmt.Sprintf("%s with id %v not found", entity, id)}
}

// NewAlreadyExists reports a uniqueness violation
func NewAlreadyExists(op, format string, args ...any) *Error {
	return &Error{Kind: AlreadyExists, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidArgument reports malformed or out-of-range input
func NewInvalidArgument(op, format string, args ...any) *Error {
	return &Error{Kind: InvalidArgument, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidState reports an operation the entity's status forbids
func NewInvalidState(op, format string, args ...any) *Error {
	return &Error{Kind: InvalidState, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NewInsufficientFunds reports a debit larger than the balance
func NewInsufficientFunds(op string, walletID uint, balance, amount fmt.Stringer) *Error {
	return &Error{
		Kind:    InsufficientFunds,
		Op:      op,
		Message: fmt.Sprintf("insufficient funds in wallet %d: balance %s, requested %s", walletID, balance, amount),
	}
}

// Wrap classifies an unexpected failure as Internal. Classified errors pass through.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: Internal, Op: op, Message: "internal error", Err: err}
}

// KindOf returns the kind of err, Internal for unclassified errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries kind k
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// Message returns the caller-facing message of err without kind or op
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
