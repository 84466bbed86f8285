package taxation

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrUnknownTaxYear  = errors.New("unknown tax year")
	ErrInvalidTaxTable = errors.New("invalid tax table")
	ErrInvalidSalary   = errors.New("invalid salary")
	ErrInvalidPlan     = errors.New("invalid student loan plan")
)

// ErrorKind separates construction failures from per-call input failures.
type ErrorKind string

const (
	// KindConfiguration means the calculator could not be built: the tax
	// year is unknown or the rate table is malformed.
	KindConfiguration ErrorKind = "configuration"
	// KindValidation means a single calculation was given bad input. The
	// calculator stays usable.
	KindValidation ErrorKind = "validation"
)

// Error carries the operation, the offending value and a readable reason.
type Error struct {
	Op     string
	Kind   ErrorKind
	Value  string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	if e.Value != "" {
		base += fmt.Sprintf(" >>%s<<", e.Value)
	}
	if e.Reason != "" {
		base += ": " + e.Reason
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind == kind
	}
	return false
}

func validationError(op, value, reason string, err error) *Error {
	return &Error{Op: op, Kind: KindValidation, Value: value, Reason: reason, Err: err}
}

func configurationError(op, value, reason string, err error) *Error {
	return &Error{Op: op, Kind: KindConfiguration, Value: value, Reason: reason, Err: err}
}
