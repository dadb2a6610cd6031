package qadd

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures raised while building, running or decoding an adder circuit
type ErrorKind string

const (
	// KindInvalidInput covers negative operands and any other out-of-contract argument
	KindInvalidInput ErrorKind = "InvalidInput"
	// KindWidthOverflow is raised when a value does not fit the requested bit width
	KindWidthOverflow ErrorKind = "WidthOverflow"
	// KindMalformedSequence covers out-of-range indices and inverting a measured sequence
	KindMalformedSequence ErrorKind = "MalformedSequence"
	// KindDecodeMismatch is raised by validation code when the decoded sum is wrong
	KindDecodeMismatch ErrorKind = "DecodeMismatch"
	// KindNotFound is raised when a job does not exist
	KindNotFound ErrorKind = "NotFound"
	// KindExpired is raised when a job has outlived its TTL
	KindExpired ErrorKind = "Expired"
	// KindConflict is raised when a job is not in a state that allows the operation
	KindConflict ErrorKind = "Conflict"
)

// AdderError is the typed error returned by the adder packages
type AdderError struct {
	Kind    ErrorKind
	Message string
}

func (e *AdderError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports whether target is the sentinel for this error's kind.
// Sentinels carry no message, so any error of the same kind matches them.
func (e *AdderError) Is(target error) bool {
	t, ok := target.(*AdderError)
	if !ok {
		return false
	}
	if t.Message == "" {
		return t.Kind == e.Kind
	}
	return t == e
}

// NewError builds an AdderError of the given kind
func NewError(kind ErrorKind, format string, args ...interface{}) *AdderError {
	return &AdderError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first AdderError in err's chain, or "" if there is none
func KindOf(err error) ErrorKind {
	var ae *AdderError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

var (
	ErrInvalidInput      = &AdderError{Kind: KindInvalidInput}
	ErrWidthOverflow     = &AdderError{Kind: KindWidthOverflow}
	ErrMalformedSequence = &AdderError{Kind: KindMalformedSequence}
	ErrDecodeMismatch    = &AdderError{Kind: KindDecodeMismatch}
	ErrJobNotFound       = &AdderError{Kind: KindNotFound, Message: "job not found"}
	ErrJobExpired        = &AdderError{Kind: KindExpired, Message: "job has expired"}
	ErrJobInProgress     = &AdderError{Kind: KindConflict, Message: "job already executed or in progress"}
)
