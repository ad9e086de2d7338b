// Package dErrors carries coded domain errors across layer boundaries.
//
// Stores report infrastructure facts as sentinel errors (pkg/platform/sentinel);
// services translate those into coded errors here. Callers branch on the code,
// never on the message.
package dErrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for callers and transport layers.
type Code string

const (
	// CodeInvalidInput marks caller-supplied data that violates an invariant
	// (empty name, contact with zero or multiple owners). Never retried.
	CodeInvalidInput Code = "invalid_input"

	// CodeNotFound marks a referenced identifier that does not exist at the
	// time of the operation.
	CodeNotFound Code = "not_found"

	// CodeConflict marks a storage-level uniqueness or foreign-key violation
	// (duplicate username, contact referencing a missing owner).
	CodeConflict Code = "conflict"

	// CodeInvariantViolation marks an entity in a state that forbids the
	// requested transition.
	CodeInvariantViolation Code = "invariant_violation"

	// CodeTransaction marks any other failure inside a transactional block
	// (connectivity, deadlock, driver error). The transaction is rolled back
	// before this code surfaces; retry policy belongs to the caller.
	CodeTransaction Code = "transaction"

	// CodeTimeout marks a deadline or cancellation observed mid-operation.
	CodeTimeout Code = "timeout"

	// CodeInternal marks unexpected failures outside transactional blocks.
	CodeInternal Code = "internal"
)

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a coded error with no cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause. A nil cause
// returns nil so call sites can wrap unconditionally.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var domainErr *Error
	for errors.As(err, &domainErr) {
		if domainErr.Code == code {
			return true
		}
		err = domainErr.Err
		domainErr = nil
	}
	return false
}

// CodeOf returns the outermost code in the chain, or CodeInternal when the
// error carries none.
func CodeOf(err error) Code {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}
