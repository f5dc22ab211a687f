// Package workflow implements the document lifecycle state machine shared by
// every submittable document type: Draft -> Submitted -> Cancelled, with
// amendment cloning a cancelled document back into a new draft.
package workflow

import (
	"errors"
	"fmt"
)

// DocStatus is the three-state lifecycle marker stored on every document
type DocStatus int

const (
	// Draft documents may be freely edited or deleted
	Draft DocStatus = 0
	// Submitted documents are immutable except for cancellation
	Submitted DocStatus = 1
	// Cancelled is terminal; a cancelled document can only be amended
	Cancelled DocStatus = 2
)

// String returns the string representation of the status
func (s DocStatus) String() string {
	switch s {
	case Draft:
		return "Draft"
	case Submitted:
		return "Submitted"
	case Cancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("DocStatus(%d)", int(s))
	}
}

// Valid reports whether the value is one of the three defined states
func (s DocStatus) Valid() bool {
	return s == Draft || s == Submitted || s == Cancelled
}

// ErrInvalidTransition is returned for any illegal lifecycle move, including
// lost-update races detected at commit time
var ErrInvalidTransition = errors.New("invalid lifecycle transition")

// Transition is a named lifecycle move
type Transition string

const (
	TransitionSubmit Transition = "submit"
	TransitionCancel Transition = "cancel"
	TransitionAmend  Transition = "amend"
)

// from returns the only status the transition is legal from
func (t Transition) from() (DocStatus, bool) {
	switch t {
	case TransitionSubmit:
		return Draft, true
	case TransitionCancel:
		return Submitted, true
	case TransitionAmend:
		return Cancelled, true
	default:
		return 0, false
	}
}

// Check validates that the transition is legal from the current status.
// The returned error wraps ErrInvalidTransition and names both states so it
// can surface directly as a client error.
func Check(t Transition, current DocStatus) error {
	want, ok := t.from()
	if !ok {
		return fmt.Errorf("%w: unknown transition %q", ErrInvalidTransition, string(t))
	}
	if current != want {
		return fmt.Errorf("%w: cannot %s a %s document", ErrInvalidTransition, string(t), current)
	}
	return nil
}

// Target returns the status the transition moves a document to. Amend does
// not change the original document; it reports Draft because the clone it
// produces starts there.
func (t Transition) Target() DocStatus {
	switch t {
	case TransitionSubmit:
		return Submitted
	case TransitionCancel:
		return Cancelled
	case TransitionAmend:
		return Draft
	default:
		return Draft
	}
}

// CanEdit reports whether update/delete operations are allowed; edits are
// rejected outright once a document leaves Draft, independent of any
// field-level read-only flags.
func CanEdit(s DocStatus) bool {
	return s == Draft
}
