package csc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCode is returned when a CSC is not exactly three letters.
var ErrInvalidCode = errors.New("CSC must be exactly three letters")

// GateError indicates that a step whose acknowledgement is required did not
// get it. The sequence stops at that step.
type GateError struct {
	Step     int
	Command  string
	Want     string
	Response string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("step %d: %s: response lacks %q: %q",
		e.Step, e.Command, e.Want, strings.TrimSpace(e.Response))
}

// MismatchError records an advisory check that failed. It is reported to
// the operator but never stops the sequence.
type MismatchError struct {
	Step     int
	Command  string
	Want     string
	Response string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("step %d: %s: expected %q in response: %q",
		e.Step, e.Command, e.Want, strings.TrimSpace(e.Response))
}
