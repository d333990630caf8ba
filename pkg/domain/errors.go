package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidDescription is returned when the accept-state declaration or a
// transition line is malformed.
var ErrInvalidDescription = errors.New("invalid machine description")

// ErrStateOverflow is returned when a state identity exceeds MaxStateID.
var ErrStateOverflow = errors.New("state id out of range")

// ErrInvalidSymbol is returned when a character outside the alphabet is used,
// either in a transition line or in a candidate string.
var ErrInvalidSymbol = errors.New("invalid symbol")

// ErrTrapState is returned when a well-formed symbol has no registered
// transition from the current state.
var ErrTrapState = errors.New("trap state reached")

// ErrMachineInvalid is returned when evaluating strings against a machine whose
// construction failed.
var ErrMachineInvalid = errors.New("machine is invalid")

// ErrMachineNotFound is returned when a machine name is not registered.
var ErrMachineNotFound = errors.New("machine not found")

// ErrReportNotFound is returned when a stored report run ID does not exist.
var ErrReportNotFound = errors.New("report not found")

// BuildError describes why a machine description could not be built.
// Line is 1-based; 0 means the failure is not tied to a line.
type BuildError struct {
	Line   int
	Err    error
	Detail string
}

func (e *BuildError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// SymbolError reports an out-of-alphabet character in a candidate string.
type SymbolError struct {
	Symbol   byte
	Position int
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%s %q at position %d", ErrInvalidSymbol, e.Symbol, e.Position)
}

func (e *SymbolError) Unwrap() error {
	return ErrInvalidSymbol
}
