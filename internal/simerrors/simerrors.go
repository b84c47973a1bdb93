// Package simerrors defines the typed error kinds the simulator raises,
// mirroring the teacher's sentinel-error-plus-wrap idiom
// (internal/model/battery.go, internal/config/config.go).
package simerrors

import (
	"errors"
	"fmt"
)

// Kind classifies a simulator error for callers that need to branch on it.
type Kind int

const (
	// InvalidCycle: non-monotone time, negative speed, or length < 2.
	InvalidCycle Kind = iota
	// InvalidVehicle: missing field, malformed SOC window, bad masses,
	// unsupported fcEffType/vehPtType.
	InvalidVehicle
	// InvalidInitialSoc: outside [0,1]; never fatal, caller substitutes the
	// powertrain default.
	InvalidInitialSoc
	// NonConvergence: HEV charge-balance loop exhausted its iteration budget.
	NonConvergence
	// NumericFailure: cubic speed solve found no finite real root. Fatal.
	NumericFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidCycle:
		return "InvalidCycle"
	case InvalidVehicle:
		return "InvalidVehicle"
	case InvalidInitialSoc:
		return "InvalidInitialSoc"
	case NonConvergence:
		return "NonConvergence"
	case NumericFailure:
		return "NumericFailure"
	default:
		return "Unknown"
	}
}

// Error is a typed simulator error carrying a Kind and a wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a Kind-tagged error without an underlying cause.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds a Kind-tagged error around an underlying cause.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Is reports whether err (or any error in its chain) carries the given Kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		var se *Error
		if !errors.As(err, &se) {
			return false
		}
		if se.Kind == kind {
			return true
		}
		err = se.Err
	}
	return false
}
