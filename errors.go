package ebind

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every failure returned by this package matches exactly one of
// them with errors.Is. None of them are transient.
var (
	ErrMissingFile       = errors.New("missing file")
	ErrUnboundMarker     = errors.New("unbound marker")
	ErrLoopLimitExceeded = errors.New("loop limit exceeded")
)

// errFilesDisabled is the cause attached to file markers met while file
// inlining is off.
var errFilesDisabled = errors.New("file inlining is disabled")

// Phase identifies one of the three resolution stages.
type Phase uint8

const (
	PhaseFile Phase = iota + 1
	PhaseStructural
	PhaseValue
)

func (p Phase) String() string {
	switch p {
	case PhaseFile:
		return "file"
	case PhaseStructural:
		return "structural"
	case PhaseValue:
		return "value"
	default:
		return "unknown"
	}
}

// Error describes why a template could not be bound.
type Error struct {
	Kind   error // One of ErrMissingFile, ErrUnboundMarker, ErrLoopLimitExceeded
	Phase  Phase
	Marker string
	Path   string // Path requested by a file marker
	Limit  int    // Pass bound that was hit
	Cause  error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("ebind: ")
	if e.Kind != nil {
		sb.WriteString(e.Kind.Error())
	} else {
		sb.WriteString("error")
	}
	fmt.Fprintf(&sb, " in %s phase", e.Phase)
	if e.Marker != "" {
		fmt.Fprintf(&sb, " at %s", e.Marker)
	}
	if e.Path != "" {
		fmt.Fprintf(&sb, " (path %q)", e.Path)
	}
	if e.Limit > 0 {
		fmt.Fprintf(&sb, " after %d passes, check params for circular references", e.Limit)
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func unbound(phase Phase, marker string) error {
	return &Error{Kind: ErrUnboundMarker, Phase: phase, Marker: marker}
}

func loopLimit(phase Phase, limit int) error {
	return &Error{Kind: ErrLoopLimitExceeded, Phase: phase, Limit: limit}
}

func tooLong(phase Phase, size, limit int) error {
	return &Error{
		Kind:  ErrLoopLimitExceeded,
		Phase: phase,
		Cause: fmt.Errorf("template grew to %d bytes, limit is %d", size, limit),
	}
}
